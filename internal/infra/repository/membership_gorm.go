package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipGormRepository struct {
	db *gorm.DB
}

// DI
func NewMembershipGormRepository(db *gorm.DB) *MembershipGormRepository {
	return &MembershipGormRepository{db: db}
}

func (r *MembershipGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.Membership, error) {
	var m model.Membership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("user_id = ?", userID).
			First(&m).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ非会員で作る
		m = model.Membership{UserID: userID, IsActive: false}
		return tx.Create(&m).Error
	})

	if err != nil {
		return model.Membership{}, err
	}
	return m, nil
}

func (r *MembershipGormRepository) Save(ctx context.Context, m model.Membership) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&m).Error
}
