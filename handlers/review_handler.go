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

type ReviewHandler struct {
	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
	Admin    admin.ModelAdmin
}

func NewReviewHandler(repos *repository.Repositories, site *admin.Site) *ReviewHandler {
	m, _ := site.Get("reviews")
	return &ReviewHandler{Products: repos.Products, Reviews: repos.Reviews, Admin: m}
}

type reviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Products.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	reviews, err := h.Reviews.ListByProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview stores a review by the authenticated user.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.Products.Get(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	review := models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := h.Reviews.Create(c.Request.Context(), &review); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview lets the author or an admin remove a review.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	review, err := h.Reviews.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if review.UserID != userID && utils.GetUserRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	if err := h.Reviews.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) AdminListReviews(c *gin.Context) {
	opts, err := h.Admin.ListOptions(queryMap(c), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.Reviews.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
