package models

// Formulation is a named cosmetic recipe filed under a brand, category and product type.
type Formulation struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	BrandID     int64  `gorm:"index" json:"brand_id"`
	Category    string `gorm:"index" json:"category"`
	ProductType string `gorm:"index" json:"product_type"`
	Notes       string `gorm:"type:text" json:"notes"`
}

func (Formulation) TableName() string { return TableFormulations }
