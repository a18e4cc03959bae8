package handlers

import (
	"errors"
	"net/http"
	"strings"

	"catalog/middleware"
	"catalog/models"
	"catalog/repository"
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	Domain string
	Secure bool
}

type AuthHandler struct {
	Users  repository.UserRepository
	Tokens *utils.TokenManager
	Cookie CookieConfig
}

func NewAuthHandler(users repository.UserRepository, tokens *utils.TokenManager, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Cookie: cookie}
}

type credentials struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered", "id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), strings.ToLower(input.Email))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.TokenCookie,
		token,
		int(h.Tokens.TTL().Seconds()),
		"/",
		h.Cookie.Domain,
		h.Cookie.Secure,
		true,
	)

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", h.Cookie.Domain, h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "role": user.Role, "created_at": user.CreatedAt})
}
