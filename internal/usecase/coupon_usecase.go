package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

// スクラッチ報酬クーポンのパラメータ
const (
	scratchMinPercent  = 5
	scratchMaxPercent  = 20
	scratchMinOrder    = 150.0
	couponValidityDays = 30
	checkoutBandMin    = 5.0
	checkoutBandMax    = 20.0
)

type CouponUsecase struct {
	couponRepo repo.CouponRepository
	clock      Clock
	idGen      IDGenerator
}

func NewCouponUsecase(couponRepo repo.CouponRepository, clock Clock, idGen IDGenerator) *CouponUsecase {
	return &CouponUsecase{
		couponRepo: couponRepo,
		clock:      clock,
		idGen:      idGen,
	}
}

// ListMyCoupons は「マイクーポン」一覧：未使用かつ未失効。
func (u *CouponUsecase) ListMyCoupons(ctx context.Context, userID string) ([]model.Coupon, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	all, err := u.couponRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	out := make([]model.Coupon, 0, len(all))
	for _, c := range all {
		if !c.IsUsed && c.Expiry.After(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListEligibleForCheckout はチェックアウトの選択UI用の狭いフィルタ：
// 未使用・未失効に加えて percent型かつ割引率 5〜20% のみ。
// minOrder未満はここでは落とさない（割引0のまま選択は許す）。
func (u *CouponUsecase) ListEligibleForCheckout(ctx context.Context, userID string) ([]model.Coupon, error) {
	mine, err := u.ListMyCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Coupon, 0, len(mine))
	for _, c := range mine {
		if c.Type == model.CouponTypePercent && c.Discount >= checkoutBandMin && c.Discount <= checkoutBandMax {
			out = append(out, c)
		}
	}
	return out, nil
}

// IssueScratchReward はスクラッチカードの報酬クーポンを発行する。
// 5〜20%のpercentクーポン、minOrder 150、30日有効。
func (u *CouponUsecase) IssueScratchReward(ctx context.Context, userID string) (model.Coupon, error) {
	if userID == "" {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	percent := scratchMinPercent + rand.Intn(scratchMaxPercent-scratchMinPercent+1)
	now := u.clock.Now()

	c := model.Coupon{
		ID:          "rc_" + u.idGen.NewID(),
		UserID:      userID,
		Code:        fmt.Sprintf("SAVE%d", percent),
		Description: fmt.Sprintf("%d%% off on subtotal + delivery + taxes", percent),
		Discount:    float64(percent),
		Type:        model.CouponTypePercent,
		MinOrder:    scratchMinOrder,
		Expiry:      now.Add(couponValidityDays * 24 * time.Hour),
		IsUsed:      false,
	}

	if err := u.couponRepo.Create(ctx, c); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Consume はクーポンを使用済みにする。存在しない・使用済みはno-op。
func (u *CouponUsecase) Consume(ctx context.Context, couponID string) error {
	if err := u.couponRepo.Consume(ctx, couponID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
