package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. CategoryID is a weak reference: categories have
// their own lifecycle and deleting one does not touch the products under it.
type Product struct {
	ID          string          `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	CategoryID  string          `json:"categoryId,omitempty" gorm:"index"`
}

type ProductCategory struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Name string `json:"name" gorm:"not null"`
}
