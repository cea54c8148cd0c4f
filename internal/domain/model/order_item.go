package model

import "time"

// 注文明細。確定時点のカートのコピーで、作成後は不変。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID           string    `gorm:"type:varchar(64);not null;index" json:"-"`
	DishID            string    `gorm:"type:varchar(64);not null" json:"dish_id"`
	VendorID          string    `gorm:"type:varchar(64);not null" json:"vendor_id"`
	DishNameSnapshot  string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPriceSnapshot float64   `gorm:"not null" json:"price"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null" json:"-"`
}
