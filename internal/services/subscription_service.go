package services

import (
	"context"
	"errors"
	"time"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

type SubscriptionService interface {
	// Grant создает подписку; для роли модели попутно включает
	// привилегированный статус. Старые подписки не трогаются.
	Grant(ctx context.Context, userID int64, role models.UserRole, days int, paymentID string) (*models.Subscription, error)
	// ActivateTrial - пробный период, не больше одного на пару (user, role)
	ActivateTrial(ctx context.Context, userID int64, role models.UserRole) (*models.Subscription, error)
	GetActive(ctx context.Context, userID int64, role models.UserRole) (*models.Subscription, error)
	// IsActive проверяет доступ; для роли модели лениво снимает
	// привилегию, если действующих подписок не осталось
	IsActive(ctx context.Context, userID int64, role models.UserRole) (bool, error)
	Info(ctx context.Context, userID int64, role models.UserRole) (*models.SubscriptionInfo, error)
}

type subscriptionService struct {
	subRepo   repositories.SubscriptionRepository
	userRepo  repositories.UserRepository
	trialDays int
}

func NewSubscriptionService(subRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository, trialDays int) SubscriptionService {
	return &subscriptionService{
		subRepo:   subRepo,
		userRepo:  userRepo,
		trialDays: trialDays,
	}
}

func (s *subscriptionService) Grant(ctx context.Context, userID int64, role models.UserRole, days int, paymentID string) (*models.Subscription, error) {
	if !role.IsValid() || role == models.UserRoleViewer {
		return nil, apperrors.ErrInvalidUserRole
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:    userID,
		Role:      role,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, days),
		IsActive:  true,
		PaymentID: paymentID,
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	if role == models.UserRoleModel {
		if err := s.userRepo.SetPrivileged(userID, true); err != nil {
			logger.CtxWithError(ctx, "failed to set privileged flag after grant", err, "user_id", userID)
		}
	}

	logger.CtxInfo(ctx, "subscription granted",
		"user_id", userID, "role", string(role), "days", days, "payment_id", paymentID)
	return sub, nil
}

func (s *subscriptionService) ActivateTrial(ctx context.Context, userID int64, role models.UserRole) (*models.Subscription, error) {
	used, err := s.subRepo.HasTrial(userID, role)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, apperrors.ErrTrialAlreadyUsed
	}
	return s.Grant(ctx, userID, role, s.trialDays, models.TrialPaymentID)
}

func (s *subscriptionService) GetActive(ctx context.Context, userID int64, role models.UserRole) (*models.Subscription, error) {
	sub, err := s.subRepo.FindActive(userID, role, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrSubscriptionRequired
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) IsActive(ctx context.Context, userID int64, role models.UserRole) (bool, error) {
	live, err := s.subRepo.HasLive(userID, role, time.Now())
	if err != nil {
		return false, err
	}
	if !live && role == models.UserRoleModel {
		// Ленивая ревокация: флаг мог остаться от истекшей подписки
		user, err := s.userRepo.FindByID(userID)
		if err == nil && user.IsPrivileged {
			if err := s.userRepo.SetPrivileged(userID, false); err != nil {
				logger.CtxWithError(ctx, "failed to revoke privileged flag", err, "user_id", userID)
			}
		}
	}
	return live, nil
}

func (s *subscriptionService) Info(ctx context.Context, userID int64, role models.UserRole) (*models.SubscriptionInfo, error) {
	sub, err := s.subRepo.FindActive(userID, role, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &models.SubscriptionInfo{HasSubscription: false, DaysLeft: 0}, nil
		}
		return nil, err
	}

	daysLeft := int(time.Until(sub.EndDate).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}
	return &models.SubscriptionInfo{
		HasSubscription: true,
		DaysLeft:        daysLeft,
		EndDate:         &sub.EndDate,
	}, nil
}
