package handlers

import (
	"net/http"

	"beautymatch_backend/internal/auth"
	"beautymatch_backend/internal/config"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/services"
	"beautymatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	identity services.IdentityService
}

func NewAdminHandler(base *BaseHandler, identity services.IdentityService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		identity:    identity,
	}
}

// RegisterPublicRoutes - логин без токена
func (h *AdminHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// RegisterRoutes - маршруты под AdminAuthMiddleware
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
	rg.POST("/users/:id/block", h.BlockUser)
	rg.POST("/users/:id/unblock", h.UnblockUser)
	rg.POST("/users/:id/privilege", h.SetPrivilege)
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	cfg := config.GetConfig()
	if req.Username != cfg.Admin.Username || !auth.CheckPasswordHash(req.Password, cfg.Admin.PasswordHash) {
		logger.CtxWarn(c.Request.Context(), "admin login failed", "username", req.Username, "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid credentials"))
		return
	}

	token, err := auth.GenerateToken(req.Username)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.identity.Stats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	userID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.identity.Block(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "blocked"})
}

func (h *AdminHandler) UnblockUser(c *gin.Context) {
	userID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.identity.Unblock(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unblocked"})
}

type setPrivilegeRequest struct {
	Privileged *bool `json:"privileged" validate:"required"`
}

func (h *AdminHandler) SetPrivilege(c *gin.Context) {
	userID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var body setPrivilegeRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	if err := h.identity.SetPrivileged(c.Request.Context(), userID, *body.Privileged); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
