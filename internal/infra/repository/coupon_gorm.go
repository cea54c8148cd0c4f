package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CouponGormRepository struct {
	db *gorm.DB
}

// DI
func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{db: db}
}

func (r *CouponGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Coupon, error) {
	var coupons []model.Coupon

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry asc").
		Find(&coupons).Error; err != nil {
		return []model.Coupon{}, err
	}
	return coupons, nil
}

func (r *CouponGormRepository) FindByID(ctx context.Context, couponID string) (model.Coupon, error) {
	var c model.Coupon

	err := r.db.WithContext(ctx).
		Where("id = ?", couponID).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

func (r *CouponGormRepository) Create(ctx context.Context, c model.Coupon) error {
	return r.db.WithContext(ctx).Create(&c).Error
}

// 使用済みにして有効セットから削除する。
// 見つからない・既に使用済みはno-op（行ロックで二重消費を防ぐ）。
func (r *CouponGormRepository) Consume(ctx context.Context, couponID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Coupon

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", couponID).
			First(&c).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.IsUsed {
			return nil
		}

		if err := tx.Model(&model.Coupon{}).
			Where("id = ?", couponID).
			Update("is_used", true).Error; err != nil {
			return err
		}

		// 使用済みは二度と出さないので物理削除してよい
		return tx.Where("id = ?", couponID).Delete(&model.Coupon{}).Error
	})
}
