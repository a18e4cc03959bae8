package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"catalog/admin"
	"catalog/models"
	"catalog/pkg/logger"
	"catalog/repository"
	"catalog/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// maxImageSize bounds product image uploads.
const maxImageSize = 10 << 20

type ProductHandler struct {
	Products repository.ProductRepository
	Images   storage.ImageStore
	Admin    admin.ModelAdmin
}

func NewProductHandler(products repository.ProductRepository, images storage.ImageStore, site *admin.Site) *ProductHandler {
	m, _ := site.Get("products")
	return &ProductHandler{Products: products, Images: images, Admin: m}
}

type productInput struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Type        string           `json:"type" binding:"omitempty,oneof=El Cl Bo Ho Ot"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (in productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Type = models.ProductType(in.Type)
	p.Description = in.Description
	p.Price = decimal.Zero
	if in.Price != nil {
		p.Price = *in.Price
	}
}

type productDetailResponse struct {
	Product     productView                `json:"product"`
	Reviews     []models.ProductReview     `json:"reviews"`
	Certificate *models.ProductCertificate `json:"certificate"`
}

func (h *ProductHandler) view(p models.Product) productView {
	return newProductView(p, h.Images)
}

func queryMap(c *gin.Context) map[string]string {
	out := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

// GetProducts lists products. Search and filters follow the admin
// registration of the products model.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	opts, err := h.Admin.ListOptions(queryMap(c), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.Products.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, h.view(p))
	}
	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.Products.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productDetailResponse{
		Product:     h.view(detail.Product),
		Reviews:     detail.Reviews,
		Certificate: detail.Certificate,
	})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var product models.Product
	input.apply(&product)
	if err := h.Products.Create(c.Request.Context(), &product); err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("product created")
	c.JSON(http.StatusCreated, h.view(product))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	input.apply(product)
	if err := h.Products.Update(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(*product))
}

// DeleteProduct removes the product with its reviews, certificate and store
// associations.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Uint("product_id", id).Msg("product deleted")
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.Products.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only images can be uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	key := storage.NewImageKey(fileHeader.Filename)
	if err := h.Images.Put(c.Request.Context(), key, file, contentType); err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		logger.Error().Err(err).Uint("product_id", id).Msg("image upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store image"})
		return
	}

	if err := h.Products.SetImage(c.Request.Context(), id, key); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image uploaded", "image": key, "image_url": h.Images.URL(key)})
}
