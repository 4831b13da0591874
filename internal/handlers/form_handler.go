package handlers

import (
	"context"
	"net/http"

	"beautymatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// FormHandler ведет пошаговое заполнение анкет: шлюз задает пользователю
// вопросы по одному и присылает ответы сюда.
type FormHandler struct {
	*BaseHandler
	forms services.FormService
}

func NewFormHandler(base *BaseHandler, forms services.FormService) *FormHandler {
	return &FormHandler{
		BaseHandler: base,
		forms:       forms,
	}
}

func (h *FormHandler) RegisterRoutes(rg *gin.RouterGroup) {
	forms := rg.Group("/forms")
	{
		forms.POST("/registration", h.StartRegistration)
		forms.POST("/request", h.StartRequest)
		forms.POST("/post", h.StartPost)
		forms.GET("/current", h.Current)
		forms.POST("/answer", h.Answer)
		forms.POST("/complete", h.Complete)
		forms.POST("/cancel", h.Cancel)
	}
}

func (h *FormHandler) StartRegistration(c *gin.Context) {
	h.start(c, h.forms.StartRegistration)
}

func (h *FormHandler) StartRequest(c *gin.Context) {
	h.start(c, h.forms.StartRequest)
}

func (h *FormHandler) StartPost(c *gin.Context) {
	h.start(c, h.forms.StartPost)
}

func (h *FormHandler) Current(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	state, err := h.forms.Current(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type formAnswerRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *FormHandler) Answer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var body formAnswerRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	state, err := h.forms.Answer(c.Request.Context(), userID, body.Value)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *FormHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.forms.Complete(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *FormHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	h.forms.Cancel(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}

func (h *FormHandler) start(c *gin.Context, startFn func(ctx context.Context, userID int64) (*services.FormState, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	state, err := startFn(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}
