package handlers

import (
	"net/http"

	"catalog/admin"
	"catalog/pkg/logger"
	"catalog/repository"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Site  *admin.Site
	Users repository.UserRepository
}

func NewAdminHandler(site *admin.Site, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{Site: site, Users: users}
}

// Index lists the registered models and how they are displayed.
func (h *AdminHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.Site.Models()})
}

// DeleteUser removes a user with their reviews and stores.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	logger.Info().Uint("user_id", id).Msg("user deleted")
	c.Status(http.StatusNoContent)
}
