package repository

import (
	"context"
	"errors"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductDetail is a product together with everything that hangs off it.
type ProductDetail struct {
	Product     models.Product
	Reviews     []models.ProductReview
	Certificate *models.ProductCertificate
}

type ProductRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Detail(ctx context.Context, id uint) (*ProductDetail, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetImage(ctx context.Context, id uint, key string) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	var products []models.Product
	if err := opts.apply(r.db.WithContext(ctx)).Order("id").Find(&products).Error; err != nil {
		return nil, translate(err, "product")
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := mustFind(r.db.WithContext(ctx), &product, id, "product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Detail(ctx context.Context, id uint) (*ProductDetail, error) {
	tx := r.db.WithContext(ctx)

	var detail ProductDetail
	if err := mustFind(tx, &detail.Product, id, "product"); err != nil {
		return nil, err
	}

	if err := tx.Preload("User").
		Where("product_id = ?", id).
		Order("created_at desc").
		Find(&detail.Reviews).Error; err != nil {
		return nil, translate(err, "review")
	}
	for i := range detail.Reviews {
		detail.Reviews[i].Product = &detail.Product
	}

	var certificate models.ProductCertificate
	err := tx.Where("product_id = ?", id).First(&certificate).Error
	switch {
	case err == nil:
		certificate.Product = &detail.Product
		detail.Certificate = &certificate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, translate(err, "certificate")
	}

	return &detail, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error, "product")
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := mustFind(tx, &existing, product.ID, "product"); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Save(product).Error, "product")
	})
}

func (r *productRepository) SetImage(ctx context.Context, id uint, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).UpdateColumn("image", key)
	if res.Error != nil {
		return translate(res.Error, "product")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product")
	}
	return nil
}

// Delete removes the product, its reviews, its certificate and its entries
// in every store's product variety.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := mustFind(tx, &product, id, "product"); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductReview{}).Error; err != nil {
			return translate(err, "review")
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCertificate{}).Error; err != nil {
			return translate(err, "certificate")
		}
		if err := tx.Exec("DELETE FROM "+storeProductsTable+" WHERE product_id = ?", id).Error; err != nil {
			return translate(err, "store")
		}
		return translate(tx.Delete(&product).Error, "product")
	})
}
