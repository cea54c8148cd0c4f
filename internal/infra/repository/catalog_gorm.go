package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"

	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor

	if err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&vendors).Error; err != nil {
		return []model.Vendor{}, err
	}
	return vendors, nil
}

func (r *CatalogGormRepository) FindVendorByID(ctx context.Context, vendorID string) (model.Vendor, error) {
	var v model.Vendor

	err := r.db.WithContext(ctx).
		Where("id = ?", vendorID).
		First(&v).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *CatalogGormRepository) ListDishesByVendorID(ctx context.Context, vendorID string) ([]model.Dish, error) {
	var dishes []model.Dish

	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id asc").
		Find(&dishes).Error; err != nil {
		return []model.Dish{}, err
	}
	return dishes, nil
}

func (r *CatalogGormRepository) FindDishByID(ctx context.Context, dishID string) (model.Dish, error) {
	var d model.Dish

	err := r.db.WithContext(ctx).
		Where("id = ?", dishID).
		First(&d).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dish{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dish{}, err
	}
	return d, nil
}

func (r *CatalogGormRepository) CountVendors(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&model.Vendor{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// シード用。店舗と料理をまとめて入れる。
func (r *CatalogGormRepository) CreateVendor(ctx context.Context, v model.Vendor, dishes []model.Dish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		if len(dishes) > 0 {
			if err := tx.Create(&dishes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
