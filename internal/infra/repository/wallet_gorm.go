package repository

import (
	"context"
	"errors"

	"khanaveve/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletGormRepository struct {
	db *gorm.DB
}

// DI
func NewWalletGormRepository(db *gorm.DB) *WalletGormRepository {
	return &WalletGormRepository{db: db}
}

func (r *WalletGormRepository) GetOrCreateByUserID(ctx context.Context, userID string) (model.Wallet, error) {
	var w model.Wallet

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("user_id = ?", userID).
			First(&w).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ残高0で作る
		w = model.Wallet{UserID: userID, Balance: 0}
		return tx.Create(&w).Error
	})

	if err != nil {
		return model.Wallet{}, err
	}
	return w, nil
}

// 残高変更と取引追記をひとつのトランザクションで行う。
// 残高の非負チェックはここではしない（呼び出し側の契約）。
func (r *WalletGormRepository) ApplyTransaction(ctx context.Context, txn model.WalletTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w model.Wallet

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", txn.UserID).
			First(&w).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			w = model.Wallet{UserID: txn.UserID, Balance: 0}
			if err := tx.Create(&w).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		newBalance := w.Balance
		switch txn.Kind {
		case model.TransactionCredit:
			newBalance += txn.Amount
		case model.TransactionDebit:
			newBalance -= txn.Amount
		default:
			return errors.New("invalid transaction kind")
		}

		if err := tx.Model(&model.Wallet{}).
			Where("user_id = ?", txn.UserID).
			Update("balance", newBalance).Error; err != nil {
			return err
		}

		return tx.Create(&txn).Error
	})
}

// 新しい順
func (r *WalletGormRepository) ListTransactions(ctx context.Context, userID string) ([]model.WalletTransaction, error) {
	var txns []model.WalletTransaction

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&txns).Error; err != nil {
		return []model.WalletTransaction{}, err
	}
	return txns, nil
}
