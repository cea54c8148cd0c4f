package repository

import (
	"context"

	"khanaveve/internal/domain/model"
)

// ウォレット台帳。残高変更と取引追記は必ず同時に行う。
type WalletRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Wallet, error)

	// 残高を±amountして取引を1件追記する（credit/debitはtxn.Kind）。
	// 残高の非負チェックはしない。呼び出し側が制御する。
	ApplyTransaction(ctx context.Context, txn model.WalletTransaction) error

	// 新しい順
	ListTransactions(ctx context.Context, userID string) ([]model.WalletTransaction, error)
}
