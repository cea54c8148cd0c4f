package usecase

import (
	"context"
	"net/http"
	"time"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

const (
	primeCost         = 99.0
	primeValidityDays = 30
)

type MembershipUsecase struct {
	membershipRepo repo.MembershipRepository
	walletRepo     repo.WalletRepository
	clock          Clock
	idGen          IDGenerator
}

func NewMembershipUsecase(
	membershipRepo repo.MembershipRepository,
	walletRepo repo.WalletRepository,
	clock Clock,
	idGen IDGenerator,
) *MembershipUsecase {
	return &MembershipUsecase{
		membershipRepo: membershipRepo,
		walletRepo:     walletRepo,
		clock:          clock,
		idGen:          idGen,
	}
}

func (u *MembershipUsecase) GetMembership(ctx context.Context, userID string) (model.Membership, error) {
	if userID == "" {
		return model.Membership{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	m, err := u.membershipRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Membership{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

// PurchasePrime はウォレットから99支払ってPrimeを30日有効化する。
// ウォレット台帳は残高超過を止めないので、ここで先に残高を確認する（呼び出し側契約）。
func (u *MembershipUsecase) PurchasePrime(ctx context.Context, userID string) (model.Membership, error) {
	if userID == "" {
		return model.Membership{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	w, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Membership{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if w.Balance < primeCost {
		return model.Membership{}, NewHTTPError(http.StatusBadRequest, "insufficient wallet balance")
	}

	now := u.clock.Now()
	if err := u.walletRepo.ApplyTransaction(ctx, model.WalletTransaction{
		ID:          "txn_" + u.idGen.NewID(),
		UserID:      userID,
		Amount:      primeCost,
		Kind:        model.TransactionDebit,
		Description: "Prime membership purchase",
		CreatedAt:   now,
	}); err != nil {
		return model.Membership{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	expiry := now.Add(primeValidityDays * 24 * time.Hour)
	m := model.Membership{
		UserID:    userID,
		IsActive:  true,
		Expiry:    &expiry,
		AutoRenew: true,
	}
	if err := u.membershipRepo.Save(ctx, m); err != nil {
		return model.Membership{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return m, nil
}
