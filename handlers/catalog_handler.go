package handlers

import (
	"net/http"
	"strconv"

	"catalog/metrics"
	"catalog/models"
	"catalog/pkg/errx"
	"catalog/pkg/logger"
	"catalog/repository"
	"catalog/storage"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public HTML pages.
type CatalogHandler struct {
	Products repository.ProductRepository
	Stores   repository.StoreRepository
	Images   storage.ImageStore
	Metrics  *metrics.Metrics
}

func NewCatalogHandler(repos *repository.Repositories, images storage.ImageStore, m *metrics.Metrics) *CatalogHandler {
	return &CatalogHandler{
		Products: repos.Products,
		Stores:   repos.Stores,
		Images:   images,
		Metrics:  m,
	}
}

type productView struct {
	models.Product
	ImageURL string `json:"image_url"`
}

func newProductView(p models.Product, images storage.ImageStore) productView {
	return productView{Product: p, ImageURL: images.URL(p.Image)}
}

type listPage struct {
	Title    string
	Products []productView
}

type productPage struct {
	Title       string
	Product     productView
	Reviews     []models.ProductReview
	Certificate *models.ProductCertificate
}

type storeFilterPage struct {
	Title    string
	Products []models.Product
	Selected uint
	Errors   FormErrors
	Matched  bool
	Product  *models.Product
	Stores   []models.Store
}

func (h *CatalogHandler) renderError(c *gin.Context, err error) {
	appErr := errx.FromRepository(err)
	title := "Error"
	if appErr.Status == http.StatusNotFound {
		title = "Not found"
	}
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("page failed")
	}
	c.HTML(appErr.Status, "error.html", gin.H{"Title": title, "Message": appErr.Message})
}

// ListProducts renders every product.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.Products.List(c.Request.Context(), repository.ListOptions{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, h.Images))
	}
	c.HTML(http.StatusOK, "all.html", listPage{Title: "All products", Products: views})
}

func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, repository.ErrNotFound)
		return
	}

	detail, err := h.Products.Detail(c.Request.Context(), uint(id))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "product.html", productPage{
		Title:       detail.Product.Name,
		Product:     newProductView(detail.Product, h.Images),
		Reviews:     detail.Reviews,
		Certificate: detail.Certificate,
	})
}

func (h *CatalogHandler) storeFilterPage(c *gin.Context) (*storeFilterPage, bool) {
	products, err := h.Products.List(c.Request.Context(), repository.ListOptions{})
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}
	return &storeFilterPage{Title: "Find a store", Products: products}, true
}

// StoreFilterForm renders the empty filter form. No store query runs.
func (h *CatalogHandler) StoreFilterForm(c *gin.Context) {
	page, ok := h.storeFilterPage(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "app_stores.html", page)
}

// FilterStores handles a form submission. A valid selection lists the
// stores carrying that product; an invalid one re-displays the form with
// field errors and lists nothing.
func (h *CatalogHandler) FilterStores(c *gin.Context) {
	page, ok := h.storeFilterPage(c)
	if !ok {
		return
	}

	product, formErrs, err := bindStoreFilter(c, h.Products)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(formErrs) > 0 {
		h.Metrics.RecordStoreFilter("invalid")
		page.Errors = formErrs
		c.HTML(http.StatusBadRequest, "app_stores.html", page)
		return
	}

	stores, err := h.Stores.FilterByProduct(c.Request.Context(), product.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	outcome := "matched"
	if len(stores) == 0 {
		outcome = "empty"
	}
	h.Metrics.RecordStoreFilter(outcome)

	page.Selected = product.ID
	page.Matched = true
	page.Product = product
	page.Stores = stores
	c.HTML(http.StatusOK, "app_stores.html", page)
}
