package handlers

import (
	"context"
	"errors"
	"strings"

	"catalog/models"
	"catalog/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// FormErrors maps a form field to its messages.
type FormErrors map[string][]string

func (e FormErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// StoreFilterForm is the single-field form behind /app_stores/.
type StoreFilterForm struct {
	ProductVariety uint `form:"product_variety" binding:"required"`
}

// bindStoreFilter validates the submission and returns the selected product.
// The lookup always uses the bound, validated id.
func bindStoreFilter(c *gin.Context, products repository.ProductRepository) (*models.Product, FormErrors, error) {
	var form StoreFilterForm
	errs := FormErrors{}

	if err := c.ShouldBind(&form); err != nil {
		var verrs validator.ValidationErrors
		// A submitted value that binds to zero names no product; only an
		// absent or blank field is missing.
		if errors.As(err, &verrs) && strings.TrimSpace(c.PostForm("product_variety")) == "" {
			errs.add("product_variety", msgRequired)
		} else {
			errs.add("product_variety", msgInvalidChoice)
		}
		return nil, errs, nil
	}

	product, err := lookupChoice(c.Request.Context(), products, form.ProductVariety)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		errs.add("product_variety", msgInvalidChoice)
		return nil, errs, nil
	}
	return product, nil, nil
}

func lookupChoice(ctx context.Context, products repository.ProductRepository, id uint) (*models.Product, error) {
	product, err := products.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return product, err
}
