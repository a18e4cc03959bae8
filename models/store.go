package models

import "gorm.io/gorm"

const (
	StoreNameMaxLength     = 100
	StoreLocationMaxLength = 200
)

type Store struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Location       string    `gorm:"size:200;not null" json:"location"`
	ProductVariety []Product `gorm:"many2many:store_products;constraint:OnDelete:CASCADE" json:"product_variety"`
	OwnerID        uint      `gorm:"not null;index" json:"owner_id"`
	Owner          *User     `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

func (s Store) String() string {
	return s.Name
}

func (s *Store) Validate() error {
	if err := checkLength("name", s.Name, StoreNameMaxLength, true); err != nil {
		return err
	}
	if err := checkLength("location", s.Location, StoreLocationMaxLength, true); err != nil {
		return err
	}
	if s.OwnerID == 0 {
		return invalid("owner is required")
	}
	return nil
}

func (s *Store) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}
