package usecase_test

import (
	"context"
	"testing"
	"time"

	"khanaveve/internal/domain/model"
	"khanaveve/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type checkoutFixture struct {
	uc         *usecase.CheckoutUsecase
	cartRepo   *fakeCartRepo
	couponRepo *fakeCouponRepo
	walletRepo *fakeWalletRepo
	memberRepo *fakeMembershipRepo
	now        time.Time
}

func newCheckoutFixture() *checkoutFixture {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	f := &checkoutFixture{
		cartRepo:   &fakeCartRepo{},
		couponRepo: &fakeCouponRepo{},
		walletRepo: newFakeWalletRepo(),
		memberRepo: newFakeMembershipRepo(),
		now:        now,
	}
	f.uc = usecase.NewCheckoutUsecase(f.cartRepo, f.couponRepo, f.walletRepo, f.memberRepo, newFakeClock(now))
	return f
}

func (f *checkoutFixture) addCartItem(userID string, dishID string, price float64, qty int64) {
	_ = f.cartRepo.UpsertByUserAndDish(context.Background(), model.CartItem{
		UserID:            userID,
		DishID:            dishID,
		VendorID:          "1",
		UnitPriceSnapshot: price,
		Quantity:          qty,
	})
}

func TestCheckoutUsecase_EmptyCartIsError(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.uc.ComputeCheckoutTotals(context.Background(), "u1", usecase.CheckoutInput{})
	assertErrContains(t, err, "cart empty")
}

func TestCheckoutUsecase_BaseTotals(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 250, 2) // 小計500

	out, err := f.uc.ComputeCheckoutTotals(context.Background(), "u1", usecase.CheckoutInput{})
	assert.NoError(t, err)
	assert.InDelta(t, 500.0, out.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 574.0, out.Totals.AmountDue, 1e-9)
	assert.False(t, out.CouponApplied)
}

func TestCheckoutUsecase_MembershipAndWallet(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 250, 2)
	f.walletRepo.balances["u1"] = 100
	assert.NoError(t, f.memberRepo.Save(context.Background(), model.Membership{UserID: "u1", IsActive: true}))

	out, err := f.uc.ComputeCheckoutTotals(context.Background(), "u1", usecase.CheckoutInput{UseWallet: true})
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, out.Totals.MembershipDiscount, 1e-9)
	assert.InDelta(t, 100.0, out.Totals.WalletDeduction, 1e-9)
	assert.InDelta(t, 424.0, out.Totals.AmountDue, 1e-9)
}

func TestCheckoutUsecase_CouponApplied(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 250, 2)
	ctx := context.Background()
	assert.NoError(t, f.couponRepo.Create(ctx, model.Coupon{
		ID: "c1", UserID: "u1", Code: "10%OFF",
		Discount: 10, Type: model.CouponTypePercent, MinOrder: 200,
		Expiry: f.now.Add(time.Hour),
	}))

	out, err := f.uc.ComputeCheckoutTotals(ctx, "u1", usecase.CheckoutInput{CouponID: "c1"})
	assert.NoError(t, err)
	assert.True(t, out.CouponApplied)
	assert.Equal(t, "10%OFF", out.CouponCode)
	assert.InDelta(t, 57.40, out.Totals.CouponDiscount, 1e-9)
}

// minOrder未満はエラーにせず割引0で返す（選択は維持される）
func TestCheckoutUsecase_CouponBelowMinOrderIsSoft(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 100, 1)
	ctx := context.Background()
	assert.NoError(t, f.couponRepo.Create(ctx, model.Coupon{
		ID: "c1", UserID: "u1", Code: "10%OFF",
		Discount: 10, Type: model.CouponTypePercent, MinOrder: 200,
		Expiry: f.now.Add(time.Hour),
	}))

	out, err := f.uc.ComputeCheckoutTotals(ctx, "u1", usecase.CheckoutInput{CouponID: "c1"})
	assert.NoError(t, err)
	assert.False(t, out.CouponApplied)
	assert.Zero(t, out.Totals.CouponDiscount)
	assert.Equal(t, "10%OFF", out.CouponCode)
	assert.InDelta(t, 200.0, out.CouponMinOrder, 1e-9)
}

// 他人のクーポンIDはクーポン無し扱い
func TestCheckoutUsecase_ForeignCouponIgnored(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 250, 2)
	ctx := context.Background()
	assert.NoError(t, f.couponRepo.Create(ctx, model.Coupon{
		ID: "c-other", UserID: "u2",
		Discount: 10, Type: model.CouponTypePercent,
		Expiry: f.now.Add(time.Hour),
	}))

	out, err := f.uc.ComputeCheckoutTotals(ctx, "u1", usecase.CheckoutInput{CouponID: "c-other"})
	assert.NoError(t, err)
	assert.Zero(t, out.Totals.CouponDiscount)
	assert.Empty(t, out.CouponCode)
}

func TestCheckoutUsecase_UnknownCouponIgnored(t *testing.T) {
	f := newCheckoutFixture()
	f.addCartItem("u1", "1-d1", 250, 2)

	out, err := f.uc.ComputeCheckoutTotals(context.Background(), "u1", usecase.CheckoutInput{CouponID: "missing"})
	assert.NoError(t, err)
	assert.Zero(t, out.Totals.CouponDiscount)
	assert.InDelta(t, 574.0, out.Totals.AmountDue, 1e-9)
}
