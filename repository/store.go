package repository

import (
	"context"
	"fmt"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Store, error)
	Get(ctx context.Context, id uint) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uint) error
	// FilterByProduct returns the stores whose product variety includes
	// productID, ordered by name. It never writes.
	FilterByProduct(ctx context.Context, productID uint) ([]models.Store, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("ProductVariety", func(tx *gorm.DB) *gorm.DB { return tx.Order("products.id") })
}

func (r *storeRepository) List(ctx context.Context, opts ListOptions) ([]models.Store, error) {
	var stores []models.Store
	if err := opts.apply(r.preloaded(ctx)).Order("stores.id").Find(&stores).Error; err != nil {
		return nil, translate(err, "store")
	}
	return stores, nil
}

func (r *storeRepository) Get(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := mustFind(r.preloaded(ctx), &store, id, "store"); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FilterByProduct(ctx context.Context, productID uint) ([]models.Store, error) {
	var stores []models.Store
	err := r.preloaded(ctx).
		Joins("JOIN "+storeProductsTable+" ON "+storeProductsTable+".store_id = stores.id").
		Where(storeProductsTable+".product_id = ?", productID).
		Order("stores.name").
		Find(&stores).Error
	if err != nil {
		return nil, translate(err, "store")
	}
	return stores, nil
}

// loadVariety replaces the store's product variety with the rows it names,
// failing when any id is unknown.
func loadVariety(tx *gorm.DB, store *models.Store) error {
	ids := make([]uint, 0, len(store.ProductVariety))
	seen := make(map[uint]struct{}, len(store.ProductVariety))
	for _, p := range store.ProductVariety {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		store.ProductVariety = nil
		return nil
	}

	var products []models.Product
	if err := tx.Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return translate(err, "product")
	}
	if len(products) != len(ids) {
		return fmt.Errorf("%w: product variety names an unknown product", ErrIntegrity)
	}
	store.ProductVariety = products
	return nil
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.User{}, store.OwnerID, "owner"); err != nil {
			return err
		}
		if err := loadVariety(tx, store); err != nil {
			return err
		}
		return translate(tx.Omit("Owner", "ProductVariety.*").Create(store).Error, "store")
	})
}

func (r *storeRepository) Update(ctx context.Context, store *models.Store) error {
	if err := store.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Store
		if err := mustFind(tx, &existing, store.ID, "store"); err != nil {
			return err
		}
		if err := requireExists(tx, &models.User{}, store.OwnerID, "owner"); err != nil {
			return err
		}
		if err := loadVariety(tx, store); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(store).Error; err != nil {
			return translate(err, "store")
		}
		if err := tx.Exec("DELETE FROM "+storeProductsTable+" WHERE store_id = ?", store.ID).Error; err != nil {
			return translate(err, "store")
		}
		return insertVariety(tx, store.ID, store.ProductVariety)
	})
}

func insertVariety(tx *gorm.DB, storeID uint, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, map[string]any{"store_id": storeID, "product_id": p.ID})
	}
	return translate(tx.Table(storeProductsTable).Create(rows).Error, "store")
}

// Delete removes the store and its product associations; products survive.
func (r *storeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store models.Store
		if err := mustFind(tx, &store, id, "store"); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+storeProductsTable+" WHERE store_id = ?", id).Error; err != nil {
			return translate(err, "store")
		}
		return translate(tx.Delete(&store).Error, "store")
	})
}
