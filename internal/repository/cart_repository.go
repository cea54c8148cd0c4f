package repository

import (
	"context"

	"khanaveve/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)
	// 同一料理は数量加算
	UpsertByUserAndDish(ctx context.Context, item model.CartItem) error
	UpdateQuantity(ctx context.Context, userID string, dishID string, qty int64) error
	DeleteByDishID(ctx context.Context, userID string, dishID string) error
	Clear(ctx context.Context, userID string) error
}
