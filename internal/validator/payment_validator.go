package validator

import (
	"errors"
	"regexp"
	"strings"

	"khanaveve/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

type paymentValidator struct{}

// Usecaseは interface を依存注入
func NewPaymentValidator() usecase.PaymentValidator {
	return &paymentValidator{}
}

// UPI IDの構文を検証する。実在チェックはしない（疑似ゲートウェイなので）。
func (v *paymentValidator) ValidateUPIID(upiID string) error {
	upiID = strings.TrimSpace(upiID)

	// 必須チェック
	if upiID == "" {
		return ErrInvalidInput
	}

	// name@bank 形式
	if !isUPILike(upiID) {
		return ErrInvalidInput
	}

	return nil
}

// 簡易UPI形式をチェック
func isUPILike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)
	return re.MatchString(s)
}
