package handlers

import (
	"net/http"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listings services.ListingService
}

func NewListingHandler(base *BaseHandler, listings services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler: base,
		listings:    listings,
	}
}

func (h *ListingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.MyRequests)
		requests.GET("/open", h.OpenRequests)
		requests.GET("/:id", h.GetRequest)
		requests.PATCH("/:id", h.PatchRequest)
		requests.POST("/:id/close", h.CloseRequest)
	}

	posts := rg.Group("/posts")
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.MyPosts)
		posts.GET("/open", h.OpenPosts)
		posts.GET("/:id", h.GetPost)
		posts.PATCH("/:id", h.PatchPost)
		posts.POST("/:id/close", h.ClosePost)
	}
}

func (h *ListingHandler) CreateRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var form services.RequestForm
	if !h.BindAndValidate_JSON(c, &form) {
		return
	}

	req, err := h.listings.CreateRequest(c.Request.Context(), userID, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *ListingHandler) MyRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reqs, err := h.listings.ListRequestsByCustomer(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *ListingHandler) OpenRequests(c *gin.Context) {
	reqs, err := h.listings.ListOpenRequests(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *ListingHandler) GetRequest(c *gin.Context) {
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	req, err := h.listings.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type patchListingRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func (h *ListingHandler) PatchRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var body patchListingRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	req, err := h.listings.PatchRequest(c.Request.Context(), id, userID, models.RequestField(body.Field), body.Value)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ListingHandler) CloseRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.listings.CloseRequest(c.Request.Context(), id, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

func (h *ListingHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var form services.PostForm
	if !h.BindAndValidate_JSON(c, &form) {
		return
	}

	post, err := h.listings.CreatePost(c.Request.Context(), userID, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *ListingHandler) MyPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	posts, err := h.listings.ListPostsByModel(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ListingHandler) OpenPosts(c *gin.Context) {
	posts, err := h.listings.ListOpenPosts(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ListingHandler) GetPost(c *gin.Context) {
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	post, err := h.listings.GetPost(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ListingHandler) PatchPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var body patchListingRequest
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}

	post, err := h.listings.PatchPost(c.Request.Context(), id, userID, models.PostField(body.Field), body.Value)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ListingHandler) ClosePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, err := ParseParamInt64(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.listings.ClosePost(c.Request.Context(), id, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}
