package handlers

import (
	"net/http"

	"beautymatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	*BaseHandler
	responses services.ResponseService
	ratings   services.RatingService
}

func NewResponseHandler(base *BaseHandler, responses services.ResponseService, ratings services.RatingService) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler: base,
		responses:   responses,
		ratings:     ratings,
	}
}

func (h *ResponseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests/:id/responses", h.SubmitResponse)
	rg.GET("/requests/:id/responses", h.ListByRequest)
	rg.POST("/posts/:id/offers", h.SubmitOffer)
	rg.GET("/posts/:id/offers", h.ListOffersByPost)

	responses := rg.Group("/responses")
	{
		responses.GET("/my", h.MyResponses)
		responses.POST("/:id/decision", h.Decide)
		responses.POST("/:id/ratings", h.SubmitRating)
	}
}

func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.responses.SubmitResponse(c.Request.Context(), requestID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ResponseHandler) ListByRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resps, err := h.responses.ListByRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resps)
}

func (h *ResponseHandler) MyResponses(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resps, err := h.responses.ListByModel(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resps)
}

type decisionRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

func (h *ResponseHandler) Decide(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	responseID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var body decisionRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	resp, err := h.responses.Decide(c.Request.Context(), responseID, userID, *body.Accept)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResponseHandler) SubmitOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	offer, err := h.responses.SubmitOffer(c.Request.Context(), postID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *ResponseHandler) ListOffersByPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	offers, err := h.responses.ListOffersByPost(c.Request.Context(), postID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

type submitRatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=10"`
}

func (h *ResponseHandler) SubmitRating(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	responseID, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var body submitRatingRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	rating, err := h.ratings.Submit(c.Request.Context(), responseID, userID, body.Score)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}
