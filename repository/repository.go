// Package repository is the data-access layer. Each entity gets an interface
// and a gorm implementation; cascading deletes run inside one transaction so
// no dependent row outlives its parent even on databases without
// foreign-key enforcement.
package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrIntegrity = errors.New("integrity error")
)

// storeProductsTable is the many-to-many join table between stores and products.
const storeProductsTable = "store_products"

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListOptions narrows a list query. Column names come from the admin
// registry, never from request input.
type ListOptions struct {
	Search       string
	SearchFields []string
	Filters      map[string]string
	Since        map[string]time.Time
	Limit        int
	Offset       int
}

func (o ListOptions) apply(tx *gorm.DB) *gorm.DB {
	if o.Search != "" && len(o.SearchFields) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(o.Search)) + "%"
		exprs := make([]clause.Expression, 0, len(o.SearchFields))
		for _, field := range o.SearchFields {
			exprs = append(exprs, clause.Expr{
				SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
				Vars: []any{clause.Column{Name: field}, pattern},
			})
		}
		tx = tx.Where(clause.Or(exprs...))
	}
	for column, value := range o.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
	for column, since := range o.Since {
		tx = tx.Where(clause.Gte{Column: clause.Column{Name: column}, Value: since})
	}
	if o.Limit > 0 {
		tx = tx.Limit(o.Limit)
	}
	if o.Offset > 0 {
		tx = tx.Offset(o.Offset)
	}
	return tx
}

// translate maps gorm errors onto the package errors. Validation errors from
// model hooks pass through untouched.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrValidation):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate %s", ErrIntegrity, entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s references a missing record", ErrIntegrity, entity)
	default:
		return fmt.Errorf("failed to access %s: %w", entity, err)
	}
}

// requireExists fails with ErrIntegrity when the referenced row is missing.
func requireExists(tx *gorm.DB, model any, id uint, name string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, name)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d does not exist", ErrIntegrity, name, id)
	}
	return nil
}

// mustFind loads a row by primary key, failing with ErrNotFound.
func mustFind(tx *gorm.DB, dest any, id uint, name string) error {
	return translate(tx.First(dest, id).Error, name)
}

// Repositories bundles every repository over one database handle.
type Repositories struct {
	Products     ProductRepository
	Reviews      ReviewRepository
	Stores       StoreRepository
	Certificates CertificateRepository
	Users        UserRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Products:     NewProductRepository(db),
		Reviews:      NewReviewRepository(db),
		Stores:       NewStoreRepository(db),
		Certificates: NewCertificateRepository(db),
		Users:        NewUserRepository(db),
	}
}
