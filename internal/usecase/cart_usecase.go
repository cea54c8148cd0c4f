package usecase

import (
	"context"
	"net/http"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// カートは単一店舗制：別の店の料理を入れようとしたら拒否する。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	catalogRepo repo.CatalogRepository
}

func NewCartUsecase(cartRepo repo.CartRepository, catalogRepo repo.CatalogRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
	}
}

type AddCartInput struct {
	DishID   string
	Quantity int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

type CartResponse struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int64            `json:"total_items"`
	Subtotal   float64          `json:"subtotal"`
}

func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一料理は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.DishID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid dish_id")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	dish, err := u.catalogRepo.FindDishByID(ctx, in.DishID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid dish")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 単一店舗チェック。カートに別店舗の明細があれば拒否する。
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) > 0 && items[0].VendorID != dish.VendorID {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "cart limited to one vendor")
	}

	if err := u.cartRepo.UpsertByUserAndDish(ctx, model.CartItem{
		UserID:            userID,
		DishID:            dish.ID,
		VendorID:          dish.VendorID,
		DishNameSnapshot:  dish.Name,
		UnitPriceSnapshot: dish.Price,
		Quantity:          qty,
	}); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 数量変更。0以下は削除と同じ扱い。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID string, dishID string, in UpdateCartItemInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if dishID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid dish_id")
	}

	if in.Quantity <= 0 {
		return u.RemoveItem(ctx, userID, dishID)
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userID, dishID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, dishID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartRepo.DeleteByDishID(ctx, userID, dishID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) ClearCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID string) (CartResponse, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var totalItems int64
	var subtotal float64
	for _, it := range items {
		totalItems += it.Quantity
		subtotal += it.UnitPriceSnapshot * float64(it.Quantity)
	}

	return CartResponse{Items: items, TotalItems: totalItems, Subtotal: subtotal}, nil
}

// Subtotal は価格エンジンに渡す小計（スナップショット価格×数量の合計）。
func Subtotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.UnitPriceSnapshot * float64(it.Quantity)
	}
	return total
}
