package repository

import (
	"context"

	"khanaveve/internal/domain/model"
)

// クーポン台帳の永続化。
type CouponRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]model.Coupon, error)
	FindByID(ctx context.Context, couponID string) (model.Coupon, error)

	// 発行（報酬アンロックや初期付与）
	Create(ctx context.Context, c model.Coupon) error

	// 使用済みにして有効セットから削除する。
	// 存在しない・既に使用済みのIDはno-op（エラーにしない）。
	Consume(ctx context.Context, couponID string) error
}
