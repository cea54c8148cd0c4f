package model

import "time"

// カート明細。カートは「1ユーザー1カート」なので user_id 直下にぶら下げる。
// 名前・価格は追加時点のスナップショット。
type CartItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string    `gorm:"type:varchar(64);not null;index" json:"-"`
	DishID            string    `gorm:"type:varchar(64);not null;index" json:"dish_id"`
	VendorID          string    `gorm:"type:varchar(64);not null" json:"vendor_id"`
	DishNameSnapshot  string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot float64   `gorm:"not null" json:"price"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
