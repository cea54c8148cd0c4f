package usecase

import (
	"context"
	"net/http"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

// CheckoutUsecase はカート・クーポン・ウォレット・会員情報を集めて
// 価格エンジンに渡し、支払額の内訳を返す。
type CheckoutUsecase struct {
	cartRepo       repo.CartRepository
	couponRepo     repo.CouponRepository
	walletRepo     repo.WalletRepository
	membershipRepo repo.MembershipRepository
	clock          Clock
}

func NewCheckoutUsecase(
	cartRepo repo.CartRepository,
	couponRepo repo.CouponRepository,
	walletRepo repo.WalletRepository,
	membershipRepo repo.MembershipRepository,
	clock Clock,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:       cartRepo,
		couponRepo:     couponRepo,
		walletRepo:     walletRepo,
		membershipRepo: membershipRepo,
		clock:          clock,
	}
}

type CheckoutInput struct {
	CouponID  string
	UseWallet bool
}

type CheckoutOutput struct {
	Totals CheckoutTotals `json:"totals"`
	// クーポンを選んだが割引が付かなかった場合のヒント用
	CouponApplied  bool    `json:"coupon_applied"`
	CouponCode     string  `json:"coupon_code,omitempty"`
	CouponMinOrder float64 `json:"coupon_min_order,omitempty"`
}

// ComputeCheckoutTotals は支払額の内訳を返す。空カートはエラー状態。
// minOrder未満のクーポンはエラーにせず割引0のまま返す（ソフトな非適格）。
func (u *CheckoutUsecase) ComputeCheckoutTotals(ctx context.Context, userID string, in CheckoutInput) (CheckoutOutput, error) {
	if userID == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	subtotal := Subtotal(items)

	membership, err := u.membershipRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	wallet, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var coupon *model.Coupon
	if in.CouponID != "" {
		c, err := u.couponRepo.FindByID(ctx, in.CouponID)
		if err == nil && c.UserID == userID {
			coupon = &c
		} else if err != nil && err != repo.ErrNotFound {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// 見つからないIDはクーポン無し扱い
	}

	totals := ComputeTotals(PricingInput{
		Subtotal:         subtotal,
		MembershipActive: membership.IsActive,
		Coupon:           coupon,
		UseWallet:        in.UseWallet,
		WalletBalance:    wallet.Balance,
		Now:              u.clock.Now(),
	})

	out := CheckoutOutput{
		Totals:        totals,
		CouponApplied: totals.CouponDiscount > 0,
	}
	if coupon != nil {
		out.CouponCode = coupon.Code
		out.CouponMinOrder = coupon.MinOrder
	}
	return out, nil
}
