package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const CertificateNameMaxLength = 100

// ProductCertificate belongs to exactly one product; the unique index on
// product_id keeps it one-to-one.
type ProductCertificate struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProductID       uint      `gorm:"not null;uniqueIndex" json:"product_id"`
	Product         *Product  `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	CertificateName string    `gorm:"size:100;not null" json:"certificate_name"`
	IssuedDate      time.Time `gorm:"index" json:"issued_date"`
}

func (c ProductCertificate) String() string {
	name := ""
	if c.Product != nil {
		name = c.Product.String()
	}
	return fmt.Sprintf("Certificate for %s", name)
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func (c *ProductCertificate) applyDefaults() {
	if c.IssuedDate.IsZero() {
		c.IssuedDate = Today()
		return
	}
	c.IssuedDate = c.IssuedDate.UTC().Truncate(24 * time.Hour)
}

func (c *ProductCertificate) Validate() error {
	if c.ProductID == 0 {
		return invalid("product is required")
	}
	return checkLength("certificate_name", c.CertificateName, CertificateNameMaxLength, true)
}

func (c *ProductCertificate) BeforeSave(tx *gorm.DB) error {
	c.applyDefaults()
	return c.Validate()
}
