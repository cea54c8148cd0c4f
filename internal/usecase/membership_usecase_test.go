package usecase_test

import (
	"context"
	"testing"
	"time"

	"khanaveve/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func newMembershipFixture(balance float64) (*usecase.MembershipUsecase, *fakeWalletRepo, time.Time) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	walletRepo := newFakeWalletRepo()
	walletRepo.balances["u1"] = balance
	uc := usecase.NewMembershipUsecase(newFakeMembershipRepo(), walletRepo, newFakeClock(now), &seqIDGen{})
	return uc, walletRepo, now
}

func TestMembershipUsecase_GetMembership_DefaultInactive(t *testing.T) {
	uc, _, _ := newMembershipFixture(0)

	m, err := uc.GetMembership(context.Background(), "u1")
	assert.NoError(t, err)
	assert.False(t, m.IsActive)
}

func TestMembershipUsecase_PurchasePrime(t *testing.T) {
	uc, walletRepo, now := newMembershipFixture(350)
	ctx := context.Background()

	m, err := uc.PurchasePrime(ctx, "u1")
	assert.NoError(t, err)
	assert.True(t, m.IsActive)
	assert.True(t, m.AutoRenew)
	if assert.NotNil(t, m.Expiry) {
		assert.Equal(t, now.Add(30*24*time.Hour), *m.Expiry)
	}

	// 99引かれている
	w, err := walletRepo.GetOrCreateByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.InDelta(t, 251.0, w.Balance, 1e-9)
}

func TestMembershipUsecase_PurchasePrime_InsufficientBalance(t *testing.T) {
	uc, walletRepo, _ := newMembershipFixture(98)
	ctx := context.Background()

	_, err := uc.PurchasePrime(ctx, "u1")
	assertErrContains(t, err, "insufficient wallet balance")

	// 残高は減っていない
	w, err := walletRepo.GetOrCreateByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.InDelta(t, 98.0, w.Balance, 1e-9)
}
