package usecase

import (
	"context"
	"net/http"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

// カタログ閲覧。読み取り専用（生成・更新はシードの仕事）。
type CatalogUsecase struct {
	catalogRepo repo.CatalogRepository
}

func NewCatalogUsecase(catalogRepo repo.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{catalogRepo: catalogRepo}
}

type VendorOutput struct {
	model.Vendor
	Dishes []model.Dish `json:"dishes"`
}

func (u *CatalogUsecase) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := u.catalogRepo.ListVendors(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return vendors, nil
}

func (u *CatalogUsecase) GetVendor(ctx context.Context, vendorID string) (VendorOutput, error) {
	if vendorID == "" {
		return VendorOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	v, err := u.catalogRepo.FindVendorByID(ctx, vendorID)
	if err == repo.ErrNotFound {
		return VendorOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return VendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dishes, err := u.catalogRepo.ListDishesByVendorID(ctx, vendorID)
	if err != nil {
		return VendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return VendorOutput{Vendor: v, Dishes: dishes}, nil
}
