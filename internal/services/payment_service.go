package services

import (
	"context"
	"errors"
	"fmt"

	"beautymatch_backend/internal/gateway"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/pkg/apperrors"
)

// Tariff - цена и длительность подписки для роли
type Tariff struct {
	Price float64
	Days  int
}

type PaymentService interface {
	// CreateCheckout создает платеж у провайдера и возвращает ссылку
	// на оплату. Подписка не выдается до подтверждения.
	CreateCheckout(ctx context.Context, userID int64, role models.UserRole) (*gateway.Charge, error)
	// ConfirmPayment опрашивает статус платежа и при succeeded выдает
	// подписку. Ссылочная целостность на стороне провайдера: повторный
	// Grant по тому же chargeID не создается.
	ConfirmPayment(ctx context.Context, userID int64, role models.UserRole, chargeID string) (*models.Subscription, error)
}

type paymentService struct {
	payments     gateway.PaymentGateway
	subscription SubscriptionService
	subRepo      repositories.SubscriptionRepository
	userRepo     repositories.UserRepository
	tariffs      map[models.UserRole]Tariff
}

func NewPaymentService(
	payments gateway.PaymentGateway,
	subscription SubscriptionService,
	subRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	tariffs map[models.UserRole]Tariff,
) PaymentService {
	return &paymentService{
		payments:     payments,
		subscription: subscription,
		subRepo:      subRepo,
		userRepo:     userRepo,
		tariffs:      tariffs,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID int64, role models.UserRole) (*gateway.Charge, error) {
	tariff, ok := s.tariffs[role]
	if !ok {
		return nil, apperrors.ErrInvalidUserRole
	}

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

	charge, err := s.payments.CreateCharge(ctx, gateway.ChargeRequest{
		Amount:      tariff.Price,
		Description: fmt.Sprintf("Подписка %s на %d дней", role, tariff.Days),
		UserID:      userID,
		Role:        role,
	})
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "payments")
	}

	logger.CtxInfo(ctx, "checkout created",
		"user_id", userID, "role", string(role), "charge_id", charge.ID, "amount", tariff.Price)
	return charge, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, userID int64, role models.UserRole, chargeID string) (*models.Subscription, error) {
	tariff, ok := s.tariffs[role]
	if !ok {
		return nil, apperrors.ErrInvalidUserRole
	}

	// Повторное подтверждение того же платежа возвращает уже выданную
	// подписку вместо второй
	if existing, err := s.subRepo.FindByPaymentID(chargeID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, err
	}

	status, err := s.payments.CheckStatus(ctx, chargeID)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "payments")
	}
	if status != models.PaymentStatusSucceeded {
		logger.CtxWarn(ctx, "payment is not succeeded yet", "charge_id", chargeID, "status", string(status))
		return nil, apperrors.ErrPaymentNotSucceeded
	}

	return s.subscription.Grant(ctx, userID, role, tariff.Days, chargeID)
}
