package usecase

import (
	"context"
	"net/http"

	"khanaveve/internal/domain/model"
	repo "khanaveve/internal/repository"
)

type WalletUsecase struct {
	walletRepo repo.WalletRepository
	clock      Clock
	idGen      IDGenerator
}

func NewWalletUsecase(walletRepo repo.WalletRepository, clock Clock, idGen IDGenerator) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		clock:      clock,
		idGen:      idGen,
	}
}

type WalletResponse struct {
	Balance      float64                   `json:"balance"`
	Transactions []model.WalletTransaction `json:"transactions"`
}

func (u *WalletUsecase) GetWallet(ctx context.Context, userID string) (WalletResponse, error) {
	if userID == "" {
		return WalletResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	w, err := u.walletRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	txns, err := u.walletRepo.ListTransactions(ctx, userID)
	if err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WalletResponse{Balance: w.Balance, Transactions: txns}, nil
}

type TopUpInput struct {
	Amount float64
}

// TopUp はウォレットへの入金。検証もカウントダウンも無しで即時クレジット。
func (u *WalletUsecase) TopUp(ctx context.Context, userID string, in TopUpInput) (WalletResponse, error) {
	if userID == "" {
		return WalletResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Amount <= 0 {
		return WalletResponse{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	if err := u.walletRepo.ApplyTransaction(ctx, model.WalletTransaction{
		ID:          "txn_" + u.idGen.NewID(),
		UserID:      userID,
		Amount:      in.Amount,
		Kind:        model.TransactionCredit,
		Description: "Wallet top-up",
		CreatedAt:   u.clock.Now(),
	}); err != nil {
		return WalletResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetWallet(ctx, userID)
}
