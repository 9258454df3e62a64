package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/avelorn/auth-service/internal/adapters/transport/http/dto"
	"github.com/avelorn/auth-service/internal/adapters/transport/http/middleware"
	"github.com/avelorn/auth-service/internal/app/auth/service"
	authErrors "github.com/avelorn/auth-service/internal/domain/auth/errors"
	"github.com/avelorn/auth-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc     service.Service
	cookies CookieConfig
	log     *zap.Logger
}

func NewHandler(svc service.Service, cookies CookieConfig, log *zap.Logger) *Handler {
	return &Handler{svc: svc, cookies: cookies, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)

	guarded := auth.Group("")
	guarded.Use(middleware.RequireAccessToken(h.svc))
	guarded.GET("/me", h.me)
	guarded.DELETE("/logout", h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	res, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.cookies.setTokens(c, res.TokenPair)
	c.JSON(http.StatusCreated, gin.H{"user": dto.NewUserResponse(res.User)})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	res, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.cookies.setTokens(c, res.TokenPair)
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(res.User)})
}

func (h *Handler) refresh(c *gin.Context) {
	raw, err := c.Cookie("refresh_token")
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.cookies.setTokens(c, res.TokenPair)
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(res.User)})
}

func (h *Handler) me(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(model.User)
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *Handler) logout(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(model.User)

	if err := h.svc.Logout(c.Request.Context(), user.ID); err != nil {
		h.handleError(c, err)
		return
	}

	h.cookies.clearTokens(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
