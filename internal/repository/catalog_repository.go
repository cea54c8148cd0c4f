package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ（店舗・料理）の取得だけを約束。生成・更新はシードに任せる。
type CatalogRepository interface {
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	FindVendorByID(ctx context.Context, vendorID string) (model.Vendor, error)
	ListDishesByVendorID(ctx context.Context, vendorID string) ([]model.Dish, error)
	FindDishByID(ctx context.Context, dishID string) (model.Dish, error)

	// シード用
	CountVendors(ctx context.Context) (int64, error)
	CreateVendor(ctx context.Context, v model.Vendor, dishes []model.Dish) error
}
