package services

// ServiceContainer собирает сервисы для передачи в хендлеры
type ServiceContainer struct {
	IdentityService     IdentityService
	SubscriptionService SubscriptionService
	ListingService      ListingService
	ResponseService     ResponseService
	RatingService       RatingService
	NotificationService NotificationService
	PaymentService      PaymentService
	FormService         FormService
}
