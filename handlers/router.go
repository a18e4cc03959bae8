package handlers

import (
	"fmt"
	"net/http"

	"catalog/admin"
	"catalog/metrics"
	"catalog/middleware"
	"catalog/repository"
	"catalog/storage"
	"catalog/templates"
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Repos   *repository.Repositories
	Images  storage.ImageStore
	Tokens  *utils.TokenManager
	Metrics *metrics.Metrics
	Site    *admin.Site
	Cookie  CookieConfig
}

func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), d.Metrics.Middleware())
	r.SetHTMLTemplate(tmpl)

	catalog := NewCatalogHandler(d.Repos, d.Images, d.Metrics)
	authHandler := NewAuthHandler(d.Repos.Users, d.Tokens, d.Cookie)
	productHandler := NewProductHandler(d.Repos.Products, d.Images, d.Site)
	reviewHandler := NewReviewHandler(d.Repos, d.Site)
	storeHandler := NewStoreHandler(d.Repos.Stores, d.Site)
	certificateHandler := NewCertificateHandler(d.Repos.Certificates, d.Site)
	adminHandler := NewAdminHandler(d.Site, d.Repos.Users)

	authRequired := middleware.AuthRequired(d.Tokens)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	r.GET("/", catalog.ListProducts)
	r.GET("/products/:id", catalog.ProductDetail)
	r.GET("/app_stores/", catalog.StoreFilterForm)
	r.POST("/app_stores/", catalog.FilterStores)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/me", authRequired, authHandler.Me)

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProductByID)
		api.GET("/products/:id/reviews", reviewHandler.ListProductReviews)
		api.POST("/products/:id/reviews", authRequired, reviewHandler.CreateReview)
		api.DELETE("/reviews/:id", authRequired, reviewHandler.DeleteReview)
	}

	adminGroup := r.Group("/admin", authRequired, middleware.AdminOnly())
	{
		adminGroup.GET("/", adminHandler.Index)

		adminGroup.GET("/products", productHandler.GetProducts)
		adminGroup.POST("/products", productHandler.CreateProduct)
		adminGroup.GET("/products/:id", productHandler.GetProductByID)
		adminGroup.PUT("/products/:id", productHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", productHandler.DeleteProduct)
		adminGroup.POST("/products/:id/image", productHandler.UploadProductImage)

		adminGroup.GET("/reviews", reviewHandler.AdminListReviews)
		adminGroup.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		adminGroup.GET("/stores", storeHandler.GetStores)
		adminGroup.POST("/stores", storeHandler.CreateStore)
		adminGroup.GET("/stores/:id", storeHandler.GetStoreByID)
		adminGroup.PUT("/stores/:id", storeHandler.UpdateStore)
		adminGroup.DELETE("/stores/:id", storeHandler.DeleteStore)

		adminGroup.GET("/certificates", certificateHandler.GetCertificates)
		adminGroup.POST("/certificates", certificateHandler.CreateCertificate)
		adminGroup.GET("/certificates/:id", certificateHandler.GetCertificateByID)
		adminGroup.PUT("/certificates/:id", certificateHandler.UpdateCertificate)
		adminGroup.DELETE("/certificates/:id", certificateHandler.DeleteCertificate)

		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Not found", "Message": "resource not found"})
	})

	return r, nil
}
