package model

import "time"

// Prime会員。有効な間はチェックアウトで小計の10%引き。
type Membership struct {
	UserID    string     `gorm:"primaryKey;type:varchar(64)" json:"-"`
	IsActive  bool       `gorm:"not null;default:false" json:"is_active"`
	Expiry    *time.Time `json:"expiry_date"`
	AutoRenew bool       `gorm:"not null;default:false" json:"auto_renew"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"-"`
}
