package usecase_test

import (
	"testing"
	"time"

	"khanaveve/internal/domain/model"
	"khanaveve/internal/usecase"

	"github.com/stretchr/testify/assert"
)

var pricingNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func percentCoupon(discount float64, minOrder float64) *model.Coupon {
	return &model.Coupon{
		ID:       "c-test",
		Code:     "TEST",
		Discount: discount,
		Type:     model.CouponTypePercent,
		MinOrder: minOrder,
		Expiry:   pricingNow.Add(24 * time.Hour),
	}
}

func fixedCoupon(discount float64, minOrder float64) *model.Coupon {
	c := percentCoupon(discount, minOrder)
	c.Type = model.CouponTypeFixed
	return c
}

func TestComputeTotals_BaseOrder(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 500,
		Now:      pricingNow,
	})

	assert.InDelta(t, 25.0, out.Taxes, 1e-9)
	assert.InDelta(t, 49.0, out.DeliveryFee, 1e-9)
	assert.InDelta(t, 574.0, out.PreDiscountTotal, 1e-9)
	assert.InDelta(t, 574.0, out.FinalTotal, 1e-9)
	assert.InDelta(t, 574.0, out.AmountDue, 1e-9)
	assert.Zero(t, out.WalletDeduction)
}

func TestComputeTotals_MembershipDiscount(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal:         500,
		MembershipActive: true,
		Now:              pricingNow,
	})

	assert.InDelta(t, 50.0, out.MembershipDiscount, 1e-9)
	assert.InDelta(t, 524.0, out.AmountDue, 1e-9)
}

// percentクーポンは小計ではなく（小計+配送料+税）に掛かる
func TestComputeTotals_PercentCouponAppliesToPreDiscountTotal(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 500,
		Coupon:   percentCoupon(10, 200),
		Now:      pricingNow,
	})

	assert.InDelta(t, 57.40, out.CouponDiscount, 1e-9)
	assert.InDelta(t, 516.60, out.AmountDue, 1e-9)
}

func TestComputeTotals_WalletDeductionCappedAtBalance(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal:      500,
		UseWallet:     true,
		WalletBalance: 100,
		Now:           pricingNow,
	})

	assert.InDelta(t, 100.0, out.WalletDeduction, 1e-9)
	assert.InDelta(t, 474.0, out.AmountDue, 1e-9)
}

func TestComputeTotals_WalletDeductionCappedAtFinalTotal(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal:      100,
		UseWallet:     true,
		WalletBalance: 10000,
		Now:           pricingNow,
	})

	assert.InDelta(t, out.FinalTotal, out.WalletDeduction, 1e-9)
	assert.Zero(t, out.AmountDue)
}

func TestComputeTotals_FixedCoupon(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 500,
		Coupon:   fixedCoupon(50, 300),
		Now:      pricingNow,
	})

	assert.InDelta(t, 50.0, out.CouponDiscount, 1e-9)
	assert.InDelta(t, 524.0, out.AmountDue, 1e-9)
}

// fixedクーポンは（小計+配送料+税）を超えない
func TestComputeTotals_FixedCouponCappedAtPreDiscountTotal(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 100,
		Coupon:   fixedCoupon(10000, 0),
		Now:      pricingNow,
	})

	assert.InDelta(t, out.PreDiscountTotal, out.CouponDiscount, 1e-9)
	assert.Zero(t, out.FinalTotal)
	assert.Zero(t, out.AmountDue)
}

// minOrderの判定は生の小計と比較する（税・配送料は足さない）
func TestComputeTotals_CouponBelowMinOrderGivesZeroDiscount(t *testing.T) {
	// 小計199 < minOrder 200 だが pre=257.95 > 200
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 199,
		Coupon:   percentCoupon(10, 200),
		Now:      pricingNow,
	})

	assert.Zero(t, out.CouponDiscount)
}

func TestComputeTotals_ExpiredCouponGivesZeroDiscount(t *testing.T) {
	c := percentCoupon(10, 0)
	c.Expiry = pricingNow.Add(-time.Minute)

	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 500,
		Coupon:   c,
		Now:      pricingNow,
	})

	assert.Zero(t, out.CouponDiscount)
}

func TestComputeTotals_UsedCouponGivesZeroDiscount(t *testing.T) {
	c := percentCoupon(10, 0)
	c.IsUsed = true

	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 500,
		Coupon:   c,
		Now:      pricingNow,
	})

	assert.Zero(t, out.CouponDiscount)
}

func TestComputeTotals_FinalTotalNeverNegative(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal:         10,
		MembershipActive: true,
		Coupon:           fixedCoupon(1000, 0),
		UseWallet:        true,
		WalletBalance:    1000,
		Now:              pricingNow,
	})

	assert.GreaterOrEqual(t, out.FinalTotal, 0.0)
	assert.GreaterOrEqual(t, out.AmountDue, 0.0)
	assert.GreaterOrEqual(t, out.WalletDeduction, 0.0)
}

func TestComputeTotals_ZeroSubtotal(t *testing.T) {
	out := usecase.ComputeTotals(usecase.PricingInput{
		Subtotal: 0,
		Now:      pricingNow,
	})

	assert.Zero(t, out.Taxes)
	assert.InDelta(t, 49.0, out.FinalTotal, 1e-9)
}

func TestCouponEligible(t *testing.T) {
	c := *percentCoupon(10, 200)

	assert.True(t, usecase.CouponEligible(c, 200, pricingNow))
	assert.False(t, usecase.CouponEligible(c, 199.99, pricingNow))

	expired := c
	expired.Expiry = pricingNow
	assert.False(t, usecase.CouponEligible(expired, 500, pricingNow))

	used := c
	used.IsUsed = true
	assert.False(t, usecase.CouponEligible(used, 500, pricingNow))
}
