package handlers

import (
	"beautymatch_backend/internal/services"
	"beautymatch_backend/internal/validator"
)

// AppHandlers собирает все HTTP-обработчики приложения
type AppHandlers struct {
	Users         *UserHandler
	Listings      *ListingHandler
	Responses     *ResponseHandler
	Subscriptions *SubscriptionHandler
	Forms         *FormHandler
	Admin         *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Users:         NewUserHandler(base, sc.IdentityService, sc.RatingService),
		Listings:      NewListingHandler(base, sc.ListingService),
		Responses:     NewResponseHandler(base, sc.ResponseService, sc.RatingService),
		Subscriptions: NewSubscriptionHandler(base, sc.SubscriptionService, sc.PaymentService),
		Forms:         NewFormHandler(base, sc.FormService),
		Admin:         NewAdminHandler(base, sc.IdentityService),
	}
}
