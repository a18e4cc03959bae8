package repository

import (
	"context"
	"testing"

	"catalog/models"
	"catalog/pkg/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Repositories, *gorm.DB) {
	t.Helper()
	database := testutil.NewDB(t)
	return New(database), database
}

func createUser(t *testing.T, repos *Repositories, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func createProduct(t *testing.T, repos *Repositories, name string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Type: models.TypeOther, Price: decimal.RequireFromString("9.99")}
	require.NoError(t, repos.Products.Create(context.Background(), product))
	return product
}

func countRows(t *testing.T, database *gorm.DB, table string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.Table(table).Count(&count).Error)
	return count
}

func TestProductCreateAppliesDefaults(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	product := &models.Product{Name: "Widget"}
	require.NoError(t, repos.Products.Create(ctx, product))

	got, err := repos.Products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, models.TypeOther, got.Type)
	assert.Equal(t, "", got.Description)
	assert.True(t, got.Price.IsZero())
	assert.False(t, got.DateAdded.IsZero())
}

func TestProductCreateRejectsInvalid(t *testing.T) {
	repos, _ := setup(t)

	err := repos.Products.Create(context.Background(), &models.Product{Name: "x", Type: "Zz"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestProductGetMissing(t *testing.T) {
	repos, _ := setup(t)

	_, err := repos.Products.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListSearchAndFilter(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, repos.Products.Create(ctx, &models.Product{Name: "Laptop", Type: models.TypeElectronics, Description: "portable"}))
	require.NoError(t, repos.Products.Create(ctx, &models.Product{Name: "Novel", Type: models.TypeBooks, Description: "a long story"}))
	require.NoError(t, repos.Products.Create(ctx, &models.Product{Name: "Lamp", Type: models.TypeHome}))

	all, err := repos.Products.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := repos.Products.List(ctx, ListOptions{Search: "STORY", SearchFields: []string{"name", "description"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Novel", found[0].Name)

	filtered, err := repos.Products.List(ctx, ListOptions{Filters: map[string]string{"type": "Ho"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Lamp", filtered[0].Name)
}

func TestProductListSearchIsLiteral(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	createProduct(t, repos, "Widget")
	createProduct(t, repos, "Gadget")
	createProduct(t, repos, "100% cotton_shirt")

	tests := []struct {
		search string
		want   []string
	}{
		{search: "_", want: []string{"100% cotton_shirt"}},
		{search: "%", want: []string{"100% cotton_shirt"}},
		{search: "0% c", want: []string{"100% cotton_shirt"}},
		{search: `\`, want: nil},
		{search: "g_t", want: nil},
		{search: "dget", want: []string{"Widget", "Gadget"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			found, err := repos.Products.List(ctx, ListOptions{Search: tt.search, SearchFields: []string{"name"}})
			require.NoError(t, err)

			names := make([]string, 0, len(found))
			for _, p := range found {
				names = append(names, p.Name)
			}
			if tt.want == nil {
				assert.Empty(t, names)
				return
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestProductDeleteCascades(t *testing.T) {
	repos, database := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")
	widget := createProduct(t, repos, "Widget")
	gadget := createProduct(t, repos, "Gadget")

	require.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: owner.ID, Rating: 4}))
	require.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: gadget.ID, UserID: owner.ID, Rating: 2}))
	require.NoError(t, repos.Certificates.Create(ctx, &models.ProductCertificate{ProductID: widget.ID, CertificateName: "CE"}))

	store := &models.Store{Name: "Mall", Location: "Downtown", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}, {ID: gadget.ID}}}
	require.NoError(t, repos.Stores.Create(ctx, store))

	require.NoError(t, repos.Products.Delete(ctx, widget.ID))

	_, err := repos.Products.Get(ctx, widget.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	reviews, err := repos.Reviews.ListByProduct(ctx, widget.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	_, err = repos.Certificates.GetByProduct(ctx, widget.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := repos.Stores.Get(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.ProductVariety, 1)
	assert.Equal(t, gadget.ID, reloaded.ProductVariety[0].ID)

	assert.Equal(t, int64(1), countRows(t, database, "product_reviews"))
	assert.Equal(t, int64(1), countRows(t, database, storeProductsTable))
}

func TestProductDeleteMissing(t *testing.T) {
	repos, _ := setup(t)

	assert.ErrorIs(t, repos.Products.Delete(context.Background(), 7), ErrNotFound)
}

func TestProductDetail(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "reader@example.com")
	widget := createProduct(t, repos, "Widget")
	require.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: author.ID, Rating: 5, Comment: "great"}))

	detail, err := repos.Products.Detail(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", detail.Product.Name)
	assert.Nil(t, detail.Certificate)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "Review of Widget by reader@example.com", detail.Reviews[0].String())

	require.NoError(t, repos.Certificates.Create(ctx, &models.ProductCertificate{ProductID: widget.ID, CertificateName: "ISO"}))
	detail, err = repos.Products.Detail(ctx, widget.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Certificate)
	assert.Equal(t, "Certificate for Widget", detail.Certificate.String())
}

func TestProductSetImage(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	widget := createProduct(t, repos, "Widget")
	require.NoError(t, repos.Products.SetImage(ctx, widget.ID, "products/abc.png"))

	got, err := repos.Products.Get(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "products/abc.png", got.Image)

	assert.ErrorIs(t, repos.Products.SetImage(ctx, 99, "x"), ErrNotFound)
}

func TestProductUpdate(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	widget := createProduct(t, repos, "Widget")
	widget.Name = "Widget Pro"
	widget.Price = decimal.RequireFromString("19.999")
	assert.ErrorIs(t, repos.Products.Update(ctx, widget), models.ErrValidation)

	widget.Price = decimal.RequireFromString("19.95")
	require.NoError(t, repos.Products.Update(ctx, widget))

	got, err := repos.Products.Get(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", got.Name)
	assert.Equal(t, "19.95", got.Price.StringFixed(2))

	assert.ErrorIs(t, repos.Products.Update(ctx, &models.Product{ID: 99, Name: "ghost"}), ErrNotFound)
}

func TestReviewRatingBounds(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "reader@example.com")
	widget := createProduct(t, repos, "Widget")

	for _, rating := range []int{1, 2, 3, 4, 5} {
		assert.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: author.ID, Rating: rating}))
	}
	for _, rating := range []int{-1, 0, 6, 100} {
		err := repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: author.ID, Rating: rating})
		assert.ErrorIs(t, err, models.ErrValidation, "rating %d", rating)
	}

	reviews, err := repos.Reviews.ListByProduct(ctx, widget.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 5)
}

func TestReviewRequiresExistingReferences(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "reader@example.com")
	err := repos.Reviews.Create(ctx, &models.ProductReview{ProductID: 123, UserID: author.ID, Rating: 3})
	assert.ErrorIs(t, err, ErrIntegrity)

	widget := createProduct(t, repos, "Widget")
	err = repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: 456, Rating: 3})
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestReviewDelete(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	author := createUser(t, repos, "reader@example.com")
	widget := createProduct(t, repos, "Widget")
	review := &models.ProductReview{ProductID: widget.ID, UserID: author.ID, Rating: 3}
	require.NoError(t, repos.Reviews.Create(ctx, review))

	require.NoError(t, repos.Reviews.Delete(ctx, review.ID))
	assert.ErrorIs(t, repos.Reviews.Delete(ctx, review.ID), ErrNotFound)

	_, err := repos.Products.Get(ctx, widget.ID)
	assert.NoError(t, err)
}

func TestCertificateOnePerProduct(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	widget := createProduct(t, repos, "Widget")
	first := &models.ProductCertificate{ProductID: widget.ID, CertificateName: "CE"}
	require.NoError(t, repos.Certificates.Create(ctx, first))
	assert.Equal(t, models.Today(), first.IssuedDate)

	err := repos.Certificates.Create(ctx, &models.ProductCertificate{ProductID: widget.ID, CertificateName: "UL"})
	assert.ErrorIs(t, err, ErrIntegrity)

	certificates, err := repos.Certificates.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, certificates, 1)
	assert.Equal(t, "CE", certificates[0].CertificateName)
}

func TestCertificateUpdateKeepsUniqueness(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	widget := createProduct(t, repos, "Widget")
	gadget := createProduct(t, repos, "Gadget")
	ce := &models.ProductCertificate{ProductID: widget.ID, CertificateName: "CE"}
	ul := &models.ProductCertificate{ProductID: gadget.ID, CertificateName: "UL"}
	require.NoError(t, repos.Certificates.Create(ctx, ce))
	require.NoError(t, repos.Certificates.Create(ctx, ul))

	ul.ProductID = widget.ID
	assert.ErrorIs(t, repos.Certificates.Update(ctx, ul), ErrIntegrity)

	ce.CertificateName = "CE Mark"
	require.NoError(t, repos.Certificates.Update(ctx, ce))
	got, err := repos.Certificates.Get(ctx, ce.ID)
	require.NoError(t, err)
	assert.Equal(t, "CE Mark", got.CertificateName)
}

func TestStoreFilterByProduct(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")
	widget := createProduct(t, repos, "Widget")
	gadget := createProduct(t, repos, "Gadget")
	lonely := createProduct(t, repos, "Lonely")

	require.NoError(t, repos.Stores.Create(ctx, &models.Store{Name: "Mall", Location: "Centre", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}}}))
	require.NoError(t, repos.Stores.Create(ctx, &models.Store{Name: "Corner", Location: "Side street", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}, {ID: gadget.ID}}}))

	stores, err := repos.Stores.FilterByProduct(ctx, widget.ID)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Corner", stores[0].Name)
	assert.Equal(t, "Mall", stores[1].Name)
	variety := make([]uint, 0, len(stores[0].ProductVariety))
	for _, p := range stores[0].ProductVariety {
		variety = append(variety, p.ID)
	}
	assert.Equal(t, []uint{widget.ID, gadget.ID}, variety)

	stores, err = repos.Stores.FilterByProduct(ctx, gadget.ID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Corner", stores[0].Name)

	stores, err = repos.Stores.FilterByProduct(ctx, lonely.ID)
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestStoreRejectsUnknownReferences(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")

	err := repos.Stores.Create(ctx, &models.Store{Name: "Mall", Location: "Centre", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: 77}}})
	assert.ErrorIs(t, err, ErrIntegrity)

	err = repos.Stores.Create(ctx, &models.Store{Name: "Mall", Location: "Centre", OwnerID: 999})
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestStoreUpdateReplacesVariety(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")
	widget := createProduct(t, repos, "Widget")
	gadget := createProduct(t, repos, "Gadget")

	store := &models.Store{Name: "Mall", Location: "Centre", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}}}
	require.NoError(t, repos.Stores.Create(ctx, store))

	store.Name = "Big Mall"
	store.ProductVariety = []models.Product{{ID: gadget.ID}}
	require.NoError(t, repos.Stores.Update(ctx, store))

	got, err := repos.Stores.Get(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big Mall", got.Name)
	require.Len(t, got.ProductVariety, 1)
	assert.Equal(t, gadget.ID, got.ProductVariety[0].ID)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner@example.com", got.Owner.Email)
}

func TestStoreDeleteKeepsProducts(t *testing.T) {
	repos, database := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")
	widget := createProduct(t, repos, "Widget")
	store := &models.Store{Name: "Mall", Location: "Centre", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}}}
	require.NoError(t, repos.Stores.Create(ctx, store))

	require.NoError(t, repos.Stores.Delete(ctx, store.ID))
	assert.Equal(t, int64(0), countRows(t, database, storeProductsTable))

	_, err := repos.Products.Get(ctx, widget.ID)
	assert.NoError(t, err)
}

func TestUserDuplicateEmail(t *testing.T) {
	repos, _ := setup(t)

	createUser(t, repos, "dup@example.com")
	err := repos.Users.Create(context.Background(), &models.User{Email: "dup@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestUserDeleteCascades(t *testing.T) {
	repos, database := setup(t)
	ctx := context.Background()

	owner := createUser(t, repos, "owner@example.com")
	other := createUser(t, repos, "other@example.com")
	widget := createProduct(t, repos, "Widget")

	require.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: owner.ID, Rating: 5}))
	require.NoError(t, repos.Reviews.Create(ctx, &models.ProductReview{ProductID: widget.ID, UserID: other.ID, Rating: 1}))
	require.NoError(t, repos.Stores.Create(ctx, &models.Store{Name: "Mall", Location: "Centre", OwnerID: owner.ID, ProductVariety: []models.Product{{ID: widget.ID}}}))

	require.NoError(t, repos.Users.Delete(ctx, owner.ID))

	reviews, err := repos.Reviews.ListByProduct(ctx, widget.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, other.ID, reviews[0].UserID)

	assert.Equal(t, int64(0), countRows(t, database, "stores"))
	assert.Equal(t, int64(0), countRows(t, database, storeProductsTable))

	_, err = repos.Products.Get(ctx, widget.ID)
	assert.NoError(t, err)
}
