package repository

import (
	"context"
	"fmt"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.ProductCertificate, error)
	Get(ctx context.Context, id uint) (*models.ProductCertificate, error)
	GetByProduct(ctx context.Context, productID uint) (*models.ProductCertificate, error)
	Create(ctx context.Context, certificate *models.ProductCertificate) error
	Update(ctx context.Context, certificate *models.ProductCertificate) error
	Delete(ctx context.Context, id uint) error
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) List(ctx context.Context, opts ListOptions) ([]models.ProductCertificate, error) {
	var certificates []models.ProductCertificate
	if err := opts.apply(r.db.WithContext(ctx)).Preload("Product").Order("id").Find(&certificates).Error; err != nil {
		return nil, translate(err, "certificate")
	}
	return certificates, nil
}

func (r *certificateRepository) Get(ctx context.Context, id uint) (*models.ProductCertificate, error) {
	var certificate models.ProductCertificate
	if err := mustFind(r.db.WithContext(ctx).Preload("Product"), &certificate, id, "certificate"); err != nil {
		return nil, err
	}
	return &certificate, nil
}

func (r *certificateRepository) GetByProduct(ctx context.Context, productID uint) (*models.ProductCertificate, error) {
	var certificate models.ProductCertificate
	err := r.db.WithContext(ctx).Preload("Product").Where("product_id = ?", productID).First(&certificate).Error
	if err != nil {
		return nil, translate(err, "certificate")
	}
	return &certificate, nil
}

// ensureUnique fails when a certificate other than exceptID already
// references productID.
func ensureUnique(tx *gorm.DB, productID, exceptID uint) error {
	var count int64
	err := tx.Model(&models.ProductCertificate{}).
		Where("product_id = ? AND id <> ?", productID, exceptID).
		Count(&count).Error
	if err != nil {
		return translate(err, "certificate")
	}
	if count > 0 {
		return fmt.Errorf("%w: product %d already has a certificate", ErrIntegrity, productID)
	}
	return nil
}

// Create adds a certificate. A product holds at most one, so a second
// certificate for the same product fails with ErrIntegrity.
func (r *certificateRepository) Create(ctx context.Context, certificate *models.ProductCertificate) error {
	if err := certificate.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Product{}, certificate.ProductID, "product"); err != nil {
			return err
		}
		if err := ensureUnique(tx, certificate.ProductID, 0); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(certificate).Error, "certificate")
	})
}

func (r *certificateRepository) Update(ctx context.Context, certificate *models.ProductCertificate) error {
	if err := certificate.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ProductCertificate
		if err := mustFind(tx, &existing, certificate.ID, "certificate"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.Product{}, certificate.ProductID, "product"); err != nil {
			return err
		}
		if err := ensureUnique(tx, certificate.ProductID, certificate.ID); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Save(certificate).Error, "certificate")
	})
}

func (r *certificateRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ProductCertificate{}, id)
	if res.Error != nil {
		return translate(res.Error, "certificate")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "certificate")
	}
	return nil
}
