package handlers

import (
	"net/http"
	"time"

	"catalog/admin"
	"catalog/models"
	"catalog/repository"
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	Stores repository.StoreRepository
	Admin  admin.ModelAdmin
}

func NewStoreHandler(stores repository.StoreRepository, site *admin.Site) *StoreHandler {
	m, _ := site.Get("stores")
	return &StoreHandler{Stores: stores, Admin: m}
}

// storeInput names products by id. OwnerID defaults to the caller.
type storeInput struct {
	Name           string `json:"name" binding:"required,max=100"`
	Location       string `json:"location" binding:"required,max=200"`
	OwnerID        uint   `json:"owner_id"`
	ProductVariety []uint `json:"product_variety"`
}

func (in storeInput) apply(c *gin.Context, s *models.Store) error {
	s.Name = in.Name
	s.Location = in.Location
	s.OwnerID = in.OwnerID
	if s.OwnerID == 0 {
		id, err := utils.GetUserID(c)
		if err != nil {
			return err
		}
		s.OwnerID = id
	}
	s.Owner = nil
	s.ProductVariety = make([]models.Product, 0, len(in.ProductVariety))
	for _, id := range in.ProductVariety {
		s.ProductVariety = append(s.ProductVariety, models.Product{ID: id})
	}
	return nil
}

func (h *StoreHandler) GetStores(c *gin.Context) {
	opts, err := h.Admin.ListOptions(queryMap(c), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stores, err := h.Stores.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) GetStoreByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, err := h.Stores.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var input storeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var store models.Store
	if err := input.apply(c, &store); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.Stores.Create(c.Request.Context(), &store); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, err := h.Stores.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input storeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.OwnerID == 0 {
		input.OwnerID = store.OwnerID
	}
	if err := input.apply(c, store); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.Stores.Update(c.Request.Context(), store); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Stores.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
