package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductType string

const (
	TypeElectronics ProductType = "El"
	TypeClothing    ProductType = "Cl"
	TypeBooks       ProductType = "Bo"
	TypeHome        ProductType = "Ho"
	TypeOther       ProductType = "Ot"
)

var productTypeLabels = map[ProductType]string{
	TypeElectronics: "Electronics",
	TypeClothing:    "Clothing",
	TypeBooks:       "Books",
	TypeHome:        "Home",
	TypeOther:       "Other",
}

// ProductTypes returns every product type in display order.
func ProductTypes() []ProductType {
	return []ProductType{TypeElectronics, TypeClothing, TypeBooks, TypeHome, TypeOther}
}

func (t ProductType) Valid() bool {
	_, ok := productTypeLabels[t]
	return ok
}

func (t ProductType) Label() string {
	if label, ok := productTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

const (
	ProductNameMaxLength = 100
	PriceScale           = 2
)

// MaxPrice is the largest value a decimal(10,2) column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Image       string          `gorm:"size:255" json:"image"`
	DateAdded   time.Time       `gorm:"index" json:"date_added"`
	Type        ProductType     `gorm:"size:2;not null;index" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (p Product) String() string {
	return p.Name
}

func (p *Product) applyDefaults() {
	if p.DateAdded.IsZero() {
		p.DateAdded = time.Now().UTC()
	}
	if p.Type == "" {
		p.Type = TypeOther
	}
}

func (p *Product) Validate() error {
	if err := checkLength("name", p.Name, ProductNameMaxLength, true); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return invalid("%q is not a valid product type", p.Type)
	}
	if p.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	if !p.Price.Equal(p.Price.Truncate(PriceScale)) {
		return invalid("price must have at most %d decimal places", PriceScale)
	}
	if p.Price.GreaterThan(MaxPrice) {
		return invalid("price must be at most %s", MaxPrice.StringFixed(PriceScale))
	}
	return nil
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.applyDefaults()
	return p.Validate()
}
