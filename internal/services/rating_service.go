package services

import (
	"context"
	"errors"
	"math"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

type RatingService interface {
	// Submit принимает балл 1-10 по принятому отклику. Оценивать могут
	// только участники отклика, по одному разу каждый. Оценка финальна.
	Submit(ctx context.Context, responseID, raterID int64, score int) (*models.Rating, error)
	// Average - средний рейтинг пользователя, 0.0 при отсутствии оценок
	Average(ctx context.Context, userID int64) (float64, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

type ratingService struct {
	ratingRepo   repositories.RatingRepository
	responseRepo repositories.ResponseRepository
	userRepo     repositories.UserRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	responseRepo repositories.ResponseRepository,
	userRepo repositories.UserRepository,
) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
	}
}

func (s *ratingService) Submit(ctx context.Context, responseID, raterID int64, score int) (*models.Rating, error) {
	if score < 1 || score > 10 {
		return nil, apperrors.ErrInvalidScore
	}

	rater, err := s.userRepo.FindByID(raterID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	if rater.IsBlocked {
		return nil, apperrors.ErrUserBlocked
	}

	resp, err := s.responseRepo.FindResponseByID(responseID)
	if err != nil {
		if errors.Is(err, repositories.ErrResponseNotFound) {
			return nil, apperrors.ErrResponseNotFound
		}
		return nil, err
	}
	if resp.Status != models.ResponseStatusAccepted || resp.Request == nil {
		return nil, apperrors.ErrRatingNotAllowed
	}

	// Оцениваемый - вторая сторона отклика
	var ratedID int64
	switch raterID {
	case resp.Request.CustomerID:
		ratedID = resp.ModelID
	case resp.ModelID:
		ratedID = resp.Request.CustomerID
	default:
		return nil, apperrors.ErrRatingNotAllowed
	}

	exists, err := s.ratingRepo.Exists(responseID, raterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateRating
	}

	positive := models.ExpandScore(score)
	rating := &models.Rating{
		ResponseID:         responseID,
		RaterID:            raterID,
		RatedID:            ratedID,
		Came:               positive,
		Prepared:           positive,
		RequirementsMet:    positive,
		WorkAgain:          positive,
		LocationConvenient: positive,
		ConditionsMet:      positive,
		AttitudeCorrect:    positive,
		CooperateAgain:     positive,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRating) {
			return nil, apperrors.ErrDuplicateRating
		}
		return nil, err
	}

	// Пересчет кешированного рейтинга по всей истории
	avg, err := s.Average(ctx, ratedID)
	if err != nil {
		logger.CtxWithError(ctx, "rating saved but average recalculation failed", err, "rated_id", ratedID)
		return rating, nil
	}
	if err := s.userRepo.SetRating(ratedID, avg); err != nil {
		logger.CtxWithError(ctx, "rating saved but cache update failed", err, "rated_id", ratedID)
	}

	logger.CtxInfo(ctx, "rating submitted",
		"response_id", responseID, "rater_id", raterID, "rated_id", ratedID, "score", score)
	return rating, nil
}

func (s *ratingService) Average(ctx context.Context, userID int64) (float64, error) {
	ratings, err := s.ratingRepo.ListByRated(userID)
	if err != nil {
		return 0, err
	}
	if len(ratings) == 0 {
		return 0.0, nil
	}

	sum := 0.0
	for i := range ratings {
		sum += ratings[i].Score()
	}
	avg := sum / float64(len(ratings))
	// Округление до одного знака
	return math.Round(avg*10) / 10, nil
}

func (s *ratingService) Count(ctx context.Context, userID int64) (int64, error) {
	return s.ratingRepo.CountByRated(userID)
}
