package handlers

import (
	"net/http"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/services"
	"beautymatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptions services.SubscriptionService
	payments      services.PaymentService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptions services.SubscriptionService, payments services.PaymentService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:   base,
		subscriptions: subscriptions,
		payments:      payments,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.GET("/info", h.Info)
		subs.POST("/trial", h.ActivateTrial)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("/checkout", h.CreateCheckout)
		payments.POST("/confirm", h.ConfirmPayment)
	}
}

func (h *SubscriptionHandler) Info(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	role := models.UserRole(c.Query("role"))
	if !role.IsValid() || role == models.UserRoleViewer {
		h.HandleServiceError(c, apperrors.ErrInvalidUserRole)
		return
	}

	info, err := h.subscriptions.Info(c.Request.Context(), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type subscriptionRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer model"`
}

func (h *SubscriptionHandler) ActivateTrial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var body subscriptionRoleRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	sub, err := h.subscriptions.ActivateTrial(c.Request.Context(), userID, models.UserRole(body.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) CreateCheckout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var body subscriptionRoleRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	charge, err := h.payments.CreateCheckout(c.Request.Context(), userID, models.UserRole(body.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"charge_id":        charge.ID,
		"confirmation_url": charge.ConfirmationURL,
		"amount":           charge.Amount,
	})
}

type confirmPaymentRequest struct {
	Role     string `json:"role" validate:"required,oneof=customer model"`
	ChargeID string `json:"charge_id" validate:"required"`
}

func (h *SubscriptionHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var body confirmPaymentRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	sub, err := h.payments.ConfirmPayment(c.Request.Context(), userID, models.UserRole(body.Role), body.ChargeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
