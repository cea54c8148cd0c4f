package model

import "time"

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

// クーポン。使用済みになったら有効セットから外す（1回限り）。
type Coupon struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string     `gorm:"type:varchar(64);not null;index" json:"-"`
	Code        string     `gorm:"type:varchar(32);not null" json:"code"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	Discount    float64    `gorm:"not null" json:"discount"`
	Type        CouponType `gorm:"type:varchar(16);not null" json:"type"`
	MinOrder    float64    `gorm:"not null" json:"min_order"`
	Expiry      time.Time  `gorm:"not null" json:"expiry"`
	IsUsed      bool       `gorm:"not null;default:false" json:"is_used"`
}
