package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

// RequestForm - форма заявки заказчика
type RequestForm struct {
	Category           string  `json:"category" validate:"required,is-service-category"`
	Subcategory        string  `json:"subcategory" validate:"is-service-subcategory"`
	City               string  `json:"city" validate:"required"`
	District           string  `json:"district" validate:"required"`
	Date               string  `json:"date" validate:"required"`
	Time               string  `json:"time" validate:"required"`
	Duration           string  `json:"duration"`
	Requirements       string  `json:"requirements"`
	ModelsNeeded       int     `json:"models_needed" validate:"required,min=1"`
	ExperienceRequired string  `json:"experience_required"`
	ViewersCount       int     `json:"viewers_count"`
	PhotoVideo         bool    `json:"photo_video"`
	MaterialsPayment   string  `json:"materials_payment"`
	ParticipationType  string  `json:"participation_type" validate:"required,is-participation-type"`
	PaymentAmount      *string `json:"payment_amount,omitempty"`
	DressCode          *string `json:"dress_code,omitempty"`
	Comment            *string `json:"comment,omitempty"`
}

// PostForm - форма поста модели о свободном времени
type PostForm struct {
	Date              string  `json:"date" validate:"required"`
	District          string  `json:"district" validate:"required"`
	Category          string  `json:"category" validate:"required,is-service-category"`
	Zones             string  `json:"zones"`
	TimeRange         string  `json:"time_range" validate:"required"`
	PhotoVideo        bool    `json:"photo_video"`
	ParticipationType string  `json:"participation_type" validate:"required,is-participation-type"`
	Note              *string `json:"note,omitempty"`
}

type ListingService interface {
	// CreateRequest - публикация заявки. Требует роль заказчика и
	// действующую подписку заказчика.
	CreateRequest(ctx context.Context, customerID int64, form RequestForm) (*models.ServiceRequest, error)
	// CreatePost - публикация поста модели. Требует привилегию,
	// действующую подписку модели и соблюдение интервала между постами.
	CreatePost(ctx context.Context, modelID int64, form PostForm) (*models.AvailabilityPost, error)

	GetRequest(ctx context.Context, id int64) (*models.ServiceRequest, error)
	GetPost(ctx context.Context, id int64) (*models.AvailabilityPost, error)
	ListRequestsByCustomer(ctx context.Context, customerID int64) ([]models.ServiceRequest, error)
	ListPostsByModel(ctx context.Context, modelID int64) ([]models.AvailabilityPost, error)
	ListOpenRequests(ctx context.Context, category string) ([]models.ServiceRequest, error)
	ListOpenPosts(ctx context.Context, category string) ([]models.AvailabilityPost, error)

	// PatchRequest/PatchPost правят одно поле из закрытого набора
	// и обновляют опубликованную копию в канале
	PatchRequest(ctx context.Context, id, requesterID int64, field models.RequestField, value string) (*models.ServiceRequest, error)
	PatchPost(ctx context.Context, id, requesterID int64, field models.PostField, value string) (*models.AvailabilityPost, error)

	CloseRequest(ctx context.Context, id, requesterID int64) error
	ClosePost(ctx context.Context, id, requesterID int64) error
}

type listingService struct {
	listingRepo  repositories.ListingRepository
	userRepo     repositories.UserRepository
	subscription SubscriptionService
	notifier     NotificationService

	postInterval time.Duration
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	subscription SubscriptionService,
	notifier NotificationService,
	postIntervalHours int,
) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		subscription: subscription,
		notifier:     notifier,
		postInterval: time.Duration(postIntervalHours) * time.Hour,
	}
}

func (s *listingService) CreateRequest(ctx context.Context, customerID int64, form RequestForm) (*models.ServiceRequest, error) {
	if _, err := s.requireUser(customerID, models.UserRoleCustomer); err != nil {
		return nil, err
	}

	active, err := s.subscription.IsActive(ctx, customerID, models.UserRoleCustomer)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrSubscriptionRequired
	}

	req := &models.ServiceRequest{
		CustomerID:         customerID,
		Category:           form.Category,
		Subcategory:        form.Subcategory,
		City:               form.City,
		District:           form.District,
		Date:               form.Date,
		Time:               form.Time,
		Duration:           form.Duration,
		Requirements:       form.Requirements,
		ModelsNeeded:       form.ModelsNeeded,
		ExperienceRequired: form.ExperienceRequired,
		ViewersCount:       form.ViewersCount,
		PhotoVideo:         form.PhotoVideo,
		MaterialsPayment:   form.MaterialsPayment,
		ParticipationType:  form.ParticipationType,
		PaymentAmount:      form.PaymentAmount,
		DressCode:          form.DressCode,
		Comment:            form.Comment,
	}
	if err := s.listingRepo.CreateRequest(req); err != nil {
		return nil, err
	}

	// Публикация в канал. Сбой не откатывает заявку: объявление можно
	// переопубликовать, заявка уже живет.
	if msgID, err := s.notifier.AnnounceRequest(ctx, req); err != nil {
		logger.CtxWithError(ctx, "failed to announce request", err, "request_id", req.ID)
	} else {
		req.MessageID = &msgID
		if err := s.listingRepo.UpdateRequestFields(req.ID, map[string]interface{}{"message_id": msgID}); err != nil {
			logger.CtxWithError(ctx, "failed to store channel message id", err, "request_id", req.ID)
		}
	}

	logger.CtxInfo(ctx, "request created", "request_id", req.ID, "customer_id", customerID)
	return req, nil
}

func (s *listingService) CreatePost(ctx context.Context, modelID int64, form PostForm) (*models.AvailabilityPost, error) {
	model, err := s.requireUser(modelID, models.UserRoleModel)
	if err != nil {
		return nil, err
	}
	if !model.IsPrivileged {
		return nil, apperrors.ErrPrivilegeRequired
	}

	active, err := s.subscription.IsActive(ctx, modelID, models.UserRoleModel)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrSubscriptionRequired
	}

	recent, err := s.listingRepo.HasRecentOpenPost(modelID, time.Now().Add(-s.postInterval))
	if err != nil {
		return nil, err
	}
	if recent {
		return nil, apperrors.ErrPostRateLimited
	}

	post := &models.AvailabilityPost{
		ModelID:           modelID,
		Date:              form.Date,
		District:          form.District,
		Category:          form.Category,
		Zones:             form.Zones,
		TimeRange:         form.TimeRange,
		PhotoVideo:        form.PhotoVideo,
		ParticipationType: form.ParticipationType,
		Note:              form.Note,
	}
	if err := s.listingRepo.CreatePost(post); err != nil {
		return nil, err
	}

	if msgID, err := s.notifier.AnnouncePost(ctx, post); err != nil {
		logger.CtxWithError(ctx, "failed to announce post", err, "post_id", post.ID)
	} else {
		post.MessageID = &msgID
		if err := s.listingRepo.UpdatePostFields(post.ID, map[string]interface{}{"message_id": msgID}); err != nil {
			logger.CtxWithError(ctx, "failed to store channel message id", err, "post_id", post.ID)
		}
	}

	logger.CtxInfo(ctx, "post created", "post_id", post.ID, "model_id", modelID)
	return post, nil
}

func (s *listingService) GetRequest(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	req, err := s.listingRepo.FindRequestByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *listingService) GetPost(ctx context.Context, id int64) (*models.AvailabilityPost, error) {
	post, err := s.listingRepo.FindPostByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *listingService) ListRequestsByCustomer(ctx context.Context, customerID int64) ([]models.ServiceRequest, error) {
	return s.listingRepo.ListRequestsByCustomer(customerID)
}

func (s *listingService) ListPostsByModel(ctx context.Context, modelID int64) ([]models.AvailabilityPost, error) {
	return s.listingRepo.ListPostsByModel(modelID)
}

func (s *listingService) ListOpenRequests(ctx context.Context, category string) ([]models.ServiceRequest, error) {
	return s.listingRepo.ListOpenRequests(category)
}

func (s *listingService) ListOpenPosts(ctx context.Context, category string) ([]models.AvailabilityPost, error) {
	return s.listingRepo.ListOpenPosts(category)
}

func (s *listingService) PatchRequest(ctx context.Context, id, requesterID int64, field models.RequestField, value string) (*models.ServiceRequest, error) {
	if !field.IsValid() {
		return nil, apperrors.ErrInvalidListingField
	}

	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != requesterID {
		return nil, apperrors.ErrNotListingOwner
	}
	if req.IsClosed {
		return nil, apperrors.ErrListingClosed
	}

	var fieldValue interface{} = value
	if field == models.RequestFieldModelsNeeded {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, apperrors.NewBadRequestError("models_needed must be a positive integer")
		}
		fieldValue = n
	}

	if err := s.listingRepo.UpdateRequestFields(id, map[string]interface{}{string(field): fieldValue}); err != nil {
		return nil, err
	}

	req, err = s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.RefreshRequestAnnouncement(ctx, req); err != nil {
		logger.CtxWithError(ctx, "failed to refresh request announcement", err, "request_id", id)
	}
	return req, nil
}

func (s *listingService) PatchPost(ctx context.Context, id, requesterID int64, field models.PostField, value string) (*models.AvailabilityPost, error) {
	if !field.IsValid() {
		return nil, apperrors.ErrInvalidListingField
	}

	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.ModelID != requesterID {
		return nil, apperrors.ErrNotListingOwner
	}
	if post.IsClosed {
		return nil, apperrors.ErrListingClosed
	}

	if err := s.listingRepo.UpdatePostFields(id, map[string]interface{}{string(field): value}); err != nil {
		return nil, err
	}

	post, err = s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.RefreshPostAnnouncement(ctx, post); err != nil {
		logger.CtxWithError(ctx, "failed to refresh post announcement", err, "post_id", id)
	}
	return post, nil
}

func (s *listingService) CloseRequest(ctx context.Context, id, requesterID int64) error {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if req.CustomerID != requesterID {
		return apperrors.ErrNotListingOwner
	}
	if req.IsClosed {
		return apperrors.ErrListingClosed
	}

	if err := s.listingRepo.UpdateRequestFields(id, map[string]interface{}{"is_closed": true}); err != nil {
		return err
	}
	req.IsClosed = true
	if err := s.notifier.RefreshRequestAnnouncement(ctx, req); err != nil {
		logger.CtxWithError(ctx, "failed to refresh closed request announcement", err, "request_id", id)
	}
	logger.CtxInfo(ctx, "request closed", "request_id", id)
	return nil
}

func (s *listingService) ClosePost(ctx context.Context, id, requesterID int64) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.ModelID != requesterID {
		return apperrors.ErrNotListingOwner
	}
	if post.IsClosed {
		return apperrors.ErrListingClosed
	}

	if err := s.listingRepo.UpdatePostFields(id, map[string]interface{}{"is_closed": true}); err != nil {
		return err
	}
	post.IsClosed = true
	if err := s.notifier.RefreshPostAnnouncement(ctx, post); err != nil {
		logger.CtxWithError(ctx, "failed to refresh closed post announcement", err, "post_id", id)
	}
	logger.CtxInfo(ctx, "post closed", "post_id", id)
	return nil
}

// requireUser проверяет существование, блокировку и роль
func (s *listingService) requireUser(userID int64, role models.UserRole) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}
	if user.Role != role {
		return nil, apperrors.ErrRoleMismatch
	}
	return user, nil
}
