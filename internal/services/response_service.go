package services

import (
	"context"
	"errors"
	"sync"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

type ResponseService interface {
	// SubmitResponse - отклик модели на заявку. Порядок проверок:
	// роль -> существование -> закрыта -> дубликат -> квота.
	SubmitResponse(ctx context.Context, requestID, modelID int64) (*models.ModelResponse, error)
	// Decide принимает или отклоняет отклик. Решение финально.
	Decide(ctx context.Context, responseID, actorID int64, accept bool) (*models.ModelResponse, error)
	// SubmitOffer - обращение заказчика к посту модели. Информационное:
	// модель получает контакты, жизненного цикла у оффера нет.
	SubmitOffer(ctx context.Context, postID, customerID int64) (*models.CustomerOffer, error)

	ListByModel(ctx context.Context, modelID int64) ([]models.ModelResponse, error)
	ListByRequest(ctx context.Context, requestID, actorID int64) ([]models.ModelResponse, error)
	ListOffersByPost(ctx context.Context, postID, actorID int64) ([]models.CustomerOffer, error)
}

type responseService struct {
	responseRepo repositories.ResponseRepository
	listingRepo  repositories.ListingRepository
	userRepo     repositories.UserRepository
	notifier     NotificationService

	multiplier int
	// Сериализация check-then-act по конкретной заявке: дубликат и квота
	// проверяются до вставки, гонку закрывает мьютекс заявки плюс
	// уникальный индекс в хранилище
	listingLocks sync.Map // map[int64]*sync.Mutex
}

func NewResponseService(
	responseRepo repositories.ResponseRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	notifier NotificationService,
	responseMultiplier int,
) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		multiplier:   responseMultiplier,
	}
}

func (s *responseService) lockListing(requestID int64) func() {
	v, _ := s.listingLocks.LoadOrStore(requestID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *responseService) SubmitResponse(ctx context.Context, requestID, modelID int64) (*models.ModelResponse, error) {
	model, err := s.requireUser(modelID, models.UserRoleModel)
	if err != nil {
		return nil, err
	}

	unlock := s.lockListing(requestID)
	defer unlock()

	req, err := s.listingRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	if req.IsClosed {
		return nil, apperrors.ErrListingClosed
	}

	exists, err := s.responseRepo.ExistsResponse(requestID, modelID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateResponse
	}

	// Отклоненные отклики квоту не занимают
	active, err := s.responseRepo.CountActiveByRequest(requestID)
	if err != nil {
		return nil, err
	}
	if active >= int64(req.ModelsNeeded*s.multiplier) {
		return nil, apperrors.ErrQuotaExceeded
	}

	resp := &models.ModelResponse{
		RequestID: requestID,
		ModelID:   modelID,
		Status:    models.ResponseStatusPending,
	}
	if err := s.responseRepo.CreateResponse(resp); err != nil {
		if errors.Is(err, repositories.ErrDuplicateResponse) {
			return nil, apperrors.ErrDuplicateResponse
		}
		return nil, err
	}

	// Уведомление после сохранения; сбой не откатывает отклик
	if err := s.notifier.NotifyNewResponse(ctx, req, model, resp.ID); err != nil {
		logger.CtxWithError(ctx, "response saved but notification failed", err, "response_id", resp.ID)
	}

	logger.CtxInfo(ctx, "response submitted", "response_id", resp.ID, "request_id", requestID, "model_id", modelID)
	return resp, nil
}

func (s *responseService) Decide(ctx context.Context, responseID, actorID int64, accept bool) (*models.ModelResponse, error) {
	resp, err := s.responseRepo.FindResponseByID(responseID)
	if err != nil {
		if errors.Is(err, repositories.ErrResponseNotFound) {
			return nil, apperrors.ErrResponseNotFound
		}
		return nil, err
	}
	if resp.Request == nil || resp.Request.CustomerID != actorID {
		return nil, apperrors.ErrNotResponseOwner
	}
	if resp.Status.IsTerminal() {
		return nil, apperrors.ErrResponseDecided
	}

	newStatus := models.ResponseStatusRejected
	if accept {
		newStatus = models.ResponseStatusAccepted
	}
	if err := s.responseRepo.UpdateResponseStatus(responseID, newStatus); err != nil {
		return nil, err
	}
	resp.Status = newStatus

	if accept {
		customer, err := s.userRepo.FindByID(resp.Request.CustomerID)
		if err != nil {
			logger.CtxWithError(ctx, "accepted but failed to load customer for notification", err, "response_id", responseID)
			return resp, nil
		}
		if err := s.notifier.NotifyResponseAccepted(ctx, resp, customer, resp.Model); err != nil {
			logger.CtxWithError(ctx, "accepted but notification failed", err, "response_id", responseID)
		}
	} else {
		if err := s.notifier.NotifyResponseRejected(ctx, resp); err != nil {
			logger.CtxWithError(ctx, "rejected but notification failed", err, "response_id", responseID)
		}
	}

	logger.CtxInfo(ctx, "response decided", "response_id", responseID, "status", string(newStatus))
	return resp, nil
}

func (s *responseService) SubmitOffer(ctx context.Context, postID, customerID int64) (*models.CustomerOffer, error) {
	customer, err := s.requireUser(customerID, models.UserRoleCustomer)
	if err != nil {
		return nil, err
	}

	post, err := s.listingRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	if post.IsClosed {
		return nil, apperrors.ErrListingClosed
	}

	exists, err := s.responseRepo.ExistsOffer(postID, customerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateResponse
	}

	offer := &models.CustomerOffer{
		PostID:     postID,
		CustomerID: customerID,
		Status:     models.ResponseStatusPending,
	}
	if err := s.responseRepo.CreateOffer(offer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateOffer) {
			return nil, apperrors.ErrDuplicateResponse
		}
		return nil, err
	}

	if err := s.notifier.NotifyNewOffer(ctx, post, customer); err != nil {
		logger.CtxWithError(ctx, "offer saved but notification failed", err, "offer_id", offer.ID)
	}

	logger.CtxInfo(ctx, "offer submitted", "offer_id", offer.ID, "post_id", postID, "customer_id", customerID)
	return offer, nil
}

func (s *responseService) ListByModel(ctx context.Context, modelID int64) ([]models.ModelResponse, error) {
	return s.responseRepo.ListByModel(modelID)
}

// ListByRequest доступен только автору заявки
func (s *responseService) ListByRequest(ctx context.Context, requestID, actorID int64) ([]models.ModelResponse, error) {
	req, err := s.listingRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	if req.CustomerID != actorID {
		return nil, apperrors.ErrNotListingOwner
	}
	return s.responseRepo.ListByRequest(requestID)
}

// ListOffersByPost доступен только автору поста
func (s *responseService) ListOffersByPost(ctx context.Context, postID, actorID int64) ([]models.CustomerOffer, error) {
	post, err := s.listingRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, err
	}
	if post.ModelID != actorID {
		return nil, apperrors.ErrNotListingOwner
	}
	return s.responseRepo.ListOffersByPost(postID)
}

func (s *responseService) requireUser(userID int64, role models.UserRole) (*models.User, error) {
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
