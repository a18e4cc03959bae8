package repository

import (
	"context"
	"fmt"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := mustFind(r.db.WithContext(ctx), &user, id, "user"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return translate(err, "user")
		}
		if count > 0 {
			return fmt.Errorf("%w: email %s is already registered", ErrIntegrity, user.Email)
		}
		return translate(tx.Omit(clause.Associations).Create(user).Error, "user")
	})
}

// Delete removes the user together with their reviews and the stores they own.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := mustFind(tx, &user, id, "user"); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ProductReview{}).Error; err != nil {
			return translate(err, "review")
		}

		var storeIDs []uint
		if err := tx.Model(&models.Store{}).Where("owner_id = ?", id).Pluck("id", &storeIDs).Error; err != nil {
			return translate(err, "store")
		}
		if len(storeIDs) > 0 {
			if err := tx.Exec("DELETE FROM "+storeProductsTable+" WHERE store_id IN ?", storeIDs).Error; err != nil {
				return translate(err, "store")
			}
			if err := tx.Where("id IN ?", storeIDs).Delete(&models.Store{}).Error; err != nil {
				return translate(err, "store")
			}
		}
		return translate(tx.Delete(&user).Error, "user")
	})
}
