package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Placed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// 経過時間→ステータスの閾値
const (
	preparingAfter      = 1 * time.Minute
	outForDeliveryAfter = 2 * time.Minute
	deliveredAfter      = 5 * time.Minute
)

type Order struct {
	ID              string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID          string      `gorm:"type:varchar(64);not null;index" json:"-"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Total           float64     `gorm:"not null" json:"total"`
	OrderDate       time.Time   `gorm:"not null;index" json:"order_date"`
	DeliveryAddress string      `gorm:"type:varchar(255)" json:"delivery_address"`
	VendorName      string      `gorm:"type:varchar(255)" json:"vendor_name"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"-"`
}

// DeriveStatus は注文日時からの経過でステータスを導出する。
// 保存済みstatusはキャッシュ扱いで、正はこちら。キャンセルだけは進行しない。
func (o Order) DeriveStatus(now time.Time) OrderStatus {
	if o.Status == OrderStatusCancelled {
		return OrderStatusCancelled
	}

	elapsed := now.Sub(o.OrderDate)
	switch {
	case elapsed >= deliveredAfter:
		return OrderStatusDelivered
	case elapsed >= outForDeliveryAfter:
		return OrderStatusOutForDelivery
	case elapsed >= preparingAfter:
		return OrderStatusPreparing
	default:
		return OrderStatusPlaced
	}
}

// StatusRank は進行順の序数。導出の単調性チェックに使う。
func StatusRank(s OrderStatus) int {
	switch s {
	case OrderStatusPlaced:
		return 0
	case OrderStatusPreparing:
		return 1
	case OrderStatusOutForDelivery:
		return 2
	case OrderStatusDelivered:
		return 3
	default:
		return -1
	}
}
