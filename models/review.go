package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ProductReview is written once by its author and never edited.
type ProductReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r ProductReview) String() string {
	product, author := "", ""
	if r.Product != nil {
		product = r.Product.String()
	}
	if r.User != nil {
		author = r.User.String()
	}
	return fmt.Sprintf("Review of %s by %s", product, author)
}

func (r *ProductReview) Validate() error {
	if r.ProductID == 0 {
		return invalid("product is required")
	}
	if r.UserID == 0 {
		return invalid("user is required")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return invalid("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

func (r *ProductReview) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
