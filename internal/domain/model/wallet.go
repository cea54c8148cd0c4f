package model

import "time"

type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

// ウォレット残高。残高の変更は必ず取引の追記とセット。
// 残高が負にならない保証は台帳側には無い（呼び出し側の契約）。
type Wallet struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	Balance   float64   `gorm:"not null" json:"balance"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

// 取引履歴。一覧は新しい順（created_at desc）で返す。
type WalletTransaction struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string          `gorm:"type:varchar(64);not null;index" json:"-"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Kind        TransactionKind `gorm:"type:varchar(16);not null" json:"type"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time       `gorm:"not null" json:"date"`
}
