package handlers

import (
	"net/http"
	"time"

	"catalog/admin"
	"catalog/models"
	"catalog/repository"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type CertificateHandler struct {
	Certificates repository.CertificateRepository
	Admin        admin.ModelAdmin
}

func NewCertificateHandler(certificates repository.CertificateRepository, site *admin.Site) *CertificateHandler {
	m, _ := site.Get("certificates")
	return &CertificateHandler{Certificates: certificates, Admin: m}
}

type certificateInput struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	CertificateName string `json:"certificate_name" binding:"required,max=100"`
	IssuedDate      string `json:"issued_date"`
}

func (in certificateInput) apply(cert *models.ProductCertificate) error {
	cert.ProductID = in.ProductID
	cert.CertificateName = in.CertificateName
	cert.Product = nil
	cert.IssuedDate = time.Time{}
	if in.IssuedDate == "" {
		return nil
	}
	issued, err := time.Parse(dateLayout, in.IssuedDate)
	if err != nil {
		return err
	}
	cert.IssuedDate = issued
	return nil
}

func (h *CertificateHandler) GetCertificates(c *gin.Context) {
	opts, err := h.Admin.ListOptions(queryMap(c), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	certificates, err := h.Certificates.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificates)
}

func (h *CertificateHandler) GetCertificateByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cert, err := h.Certificates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

// CreateCertificate fails with 409 when the product already has one.
func (h *CertificateHandler) CreateCertificate(c *gin.Context) {
	var input certificateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var cert models.ProductCertificate
	if err := input.apply(&cert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issued_date must be formatted as YYYY-MM-DD"})
		return
	}
	if err := h.Certificates.Create(c.Request.Context(), &cert); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *CertificateHandler) UpdateCertificate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cert, err := h.Certificates.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input certificateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.IssuedDate == "" {
		input.IssuedDate = cert.IssuedDate.Format(dateLayout)
	}
	if err := input.apply(cert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "issued_date must be formatted as YYYY-MM-DD"})
		return
	}

	if err := h.Certificates.Update(c.Request.Context(), cert); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificateHandler) DeleteCertificate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Certificates.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
