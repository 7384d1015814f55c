package models

// Brand is a product line that formulations are filed under.
type Brand struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName keeps the SQL table aligned with the spreadsheet tab.
func (Brand) TableName() string { return TableBrands }
