package handlers

import (
	"net/http"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	identity services.IdentityService
	ratings  services.RatingService
}

func NewUserHandler(base *BaseHandler, identity services.IdentityService, ratings services.RatingService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		identity:    identity,
		ratings:     ratings,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/role", h.SelectRole)
		users.POST("/profile", h.CompleteRegistration)
		users.POST("/change-role", h.ChangeRole)
		users.GET("/me", h.Me)
		users.GET("/:id/rating", h.Rating)
	}
}

type selectRoleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role" validate:"required,is-user-role"`
}

func (h *UserHandler) SelectRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req selectRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.identity.SelectRole(c.Request.Context(), userID, req.Username, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type completeRegistrationRequest struct {
	Profile     models.ProfileFields `json:"profile" validate:"required"`
	GDPRConsent bool                 `json:"gdpr_consent"`
}

func (h *UserHandler) CompleteRegistration(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req completeRegistrationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.identity.CompleteRegistration(c.Request.Context(), userID, req.Profile, req.GDPRConsent)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req changeRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.identity.ChangeRole(c.Request.Context(), userID, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.identity.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Rating(c *gin.Context) {
	targetID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	avg, err := h.ratings.Average(c.Request.Context(), targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	count, err := h.ratings.Count(c.Request.Context(), targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": targetID, "rating": avg, "ratings_count": count})
}
