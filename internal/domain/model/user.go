package model

import "time"

// プロフィール。編集UIは外部なのでこのコアは参照のみ
// （注文確定時の配送先をここから引く）。
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`

	Addresses []Address `gorm:"-" json:"addresses"`
}

type Address struct {
	ID          string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string `gorm:"type:varchar(64);not null;index" json:"-"`
	FullAddress string `gorm:"type:varchar(255);not null" json:"full_address"`
	IsDefault   bool   `gorm:"not null;default:false" json:"is_default"`
}

// DefaultAddress はデフォルト住所（無ければ先頭、それも無ければ空）を返す。
func (p UserProfile) DefaultAddress() string {
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a.FullAddress
		}
	}
	if len(p.Addresses) > 0 {
		return p.Addresses[0].FullAddress
	}
	return ""
}
