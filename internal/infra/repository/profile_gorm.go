package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

// DI
func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

// 住所込みで返す。無ければ空プロフィールを作る（編集は外部UIの仕事）。
func (r *ProfileGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.UserProfile, error) {
	var p model.UserProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("user_id = ?", userID).
			First(&p).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		p = model.UserProfile{UserID: userID}
		return tx.Create(&p).Error
	})

	if err != nil {
		return model.UserProfile{}, err
	}

	var addresses []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&addresses).Error; err != nil {
		return model.UserProfile{}, err
	}
	p.Addresses = addresses

	return p, nil
}

// シード用。デフォルト住所を1件付けてプロフィールを作る。
func (r *ProfileGormRepository) SeedProfile(ctx context.Context, p model.UserProfile, addresses []model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		for i := range addresses {
			if addresses[i].ID == "" {
				addresses[i].ID = uuid.NewString()
			}
			addresses[i].UserID = p.UserID
		}
		if len(addresses) > 0 {
			if err := tx.Create(&addresses).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
