package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) String() string {
	return u.Email
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Validate() error {
	if err := checkLength("email", u.Email, 254, true); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return invalid("password is required")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return invalid("%q is not a valid role", u.Role)
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u.Validate()
}
