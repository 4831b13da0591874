package gateway

import (
	"context"

	"beautymatch_backend/internal/models"
)

// Charge - созданный платеж у провайдера
type Charge struct {
	ID              string               `json:"id"`
	Status          models.PaymentStatus `json:"status"`
	Amount          float64              `json:"amount"`
	ConfirmationURL string               `json:"confirmation_url"`
}

// ChargeRequest - параметры нового платежа
type ChargeRequest struct {
	Amount      float64
	Description string
	UserID      int64
	Role        models.UserRole
}

// PaymentGateway - создание платежа и опрос его статуса.
type PaymentGateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	CheckStatus(ctx context.Context, chargeID string) (models.PaymentStatus, error)
}
