package usecase

import (
	"time"

	"khanaveve/internal/domain/model"
)

// チェックアウト価格の定数
const (
	DeliveryFee    = 49.0 // 固定配送料
	TaxRate        = 0.05 // 小計に対する税率
	MembershipRate = 0.10 // Prime会員の小計割引率
)

type PricingInput struct {
	Subtotal         float64
	MembershipActive bool
	Coupon           *model.Coupon
	UseWallet        bool
	WalletBalance    float64
	Now              time.Time
}

type CheckoutTotals struct {
	Subtotal           float64 `json:"subtotal"`
	Taxes              float64 `json:"taxes"`
	DeliveryFee        float64 `json:"delivery_fee"`
	PreDiscountTotal   float64 `json:"pre_discount_total"`
	MembershipDiscount float64 `json:"membership_discount"`
	CouponDiscount     float64 `json:"coupon_discount"`
	FinalTotal         float64 `json:"final_total"`
	WalletDeduction    float64 `json:"wallet_deduction"`
	AmountDue          float64 `json:"amount_due"`
}

// ComputeTotals は最終支払額を計算する純関数。
// 計算順は固定：小計+配送料+税 → Prime割引（小計の10%）→ クーポン割引 →
// 0円クランプ → ウォレット充当。
//
// クーポン割引は小計ではなく preDiscountTotal（小計+配送料+税）に掛かる。
// 一方で minOrder の判定は生の小計と比較する。既存挙動の維持であり
// 仕様で明示的に固定されている。
func ComputeTotals(in PricingInput) CheckoutTotals {
	taxes := in.Subtotal * TaxRate
	preDiscountTotal := in.Subtotal + DeliveryFee + taxes

	var membershipDiscount float64
	if in.MembershipActive {
		membershipDiscount = in.Subtotal * MembershipRate
	}

	var couponDiscount float64
	if in.Coupon != nil && CouponEligible(*in.Coupon, in.Subtotal, in.Now) {
		switch in.Coupon.Type {
		case model.CouponTypePercent:
			couponDiscount = preDiscountTotal * (in.Coupon.Discount / 100)
		case model.CouponTypeFixed:
			couponDiscount = in.Coupon.Discount
			if couponDiscount > preDiscountTotal {
				couponDiscount = preDiscountTotal
			}
			if couponDiscount < 0 {
				couponDiscount = 0
			}
		}
	}

	finalTotal := preDiscountTotal - membershipDiscount - couponDiscount
	if finalTotal < 0 {
		finalTotal = 0
	}

	var walletDeduction float64
	if in.UseWallet {
		walletDeduction = in.WalletBalance
		if walletDeduction > finalTotal {
			walletDeduction = finalTotal
		}
		if walletDeduction < 0 {
			walletDeduction = 0
		}
	}

	return CheckoutTotals{
		Subtotal:           in.Subtotal,
		Taxes:              taxes,
		DeliveryFee:        DeliveryFee,
		PreDiscountTotal:   preDiscountTotal,
		MembershipDiscount: membershipDiscount,
		CouponDiscount:     couponDiscount,
		FinalTotal:         finalTotal,
		WalletDeduction:    walletDeduction,
		AmountDue:          finalTotal - walletDeduction,
	}
}

// CouponEligible は未使用・未失効・小計がminOrder以上かを判定する。
func CouponEligible(c model.Coupon, subtotal float64, now time.Time) bool {
	return !c.IsUsed && c.Expiry.After(now) && subtotal >= c.MinOrder
}
