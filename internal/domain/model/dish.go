package model

// カタログの料理。生成は外部（シード）に任せる
type Dish struct {
	ID          string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	VendorID    string  `gorm:"type:varchar(64);not null;index" json:"vendor_id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"type:varchar(32)" json:"category"`
	ImageID     string  `gorm:"type:varchar(64)" json:"image_id"`
}
