package model

// 店舗（ホテル）。dishesは別テーブル
type Vendor struct {
	ID       string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Location string  `gorm:"type:varchar(255)" json:"location"`
	Rating   float64 `json:"rating"`
	Cuisine  string  `gorm:"type:varchar(255)" json:"cuisine"`
	PrepTime int     `json:"prep_time"`
	ImageID  string  `gorm:"type:varchar(64)" json:"image_id"`
}
