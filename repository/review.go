package repository

import (
	"context"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.ProductReview, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.ProductReview, error)
	Get(ctx context.Context, id uint) (*models.ProductReview, error)
	Create(ctx context.Context, review *models.ProductReview) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) List(ctx context.Context, opts ListOptions) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	err := opts.apply(r.db.WithContext(ctx)).
		Preload("Product").
		Preload("User").
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "review")
	}
	return reviews, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uint) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "review")
	}
	return reviews, nil
}

func (r *reviewRepository) Get(ctx context.Context, id uint) (*models.ProductReview, error) {
	var review models.ProductReview
	if err := mustFind(r.db.WithContext(ctx).Preload("Product").Preload("User"), &review, id, "review"); err != nil {
		return nil, err
	}
	return &review, nil
}

// Create stores a new review. The product and author must already exist.
func (r *reviewRepository) Create(ctx context.Context, review *models.ProductReview) error {
	if err := review.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Product{}, review.ProductID, "product"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.User{}, review.UserID, "user"); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(review).Error, "review")
	})
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ProductReview{}, id)
	if res.Error != nil {
		return translate(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "review")
	}
	return nil
}
