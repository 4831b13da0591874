package app

import (
	"context"
	"sync/atomic"

	"beautymatch_backend/internal/gateway"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"

	"github.com/google/uuid"
)

// MockMessenger пишет уведомления в лог вместо Telegram.
// Используется, пока не задан токен бота.
type MockMessenger struct {
	seq atomic.Int64
}

func (m *MockMessenger) Send(ctx context.Context, chatID int64, text string, buttons [][]gateway.Button) (int64, error) {
	id := m.seq.Add(1)
	logger.CtxInfo(ctx, "[MOCK] message sent", "chat_id", chatID, "message_id", id, "text", text)
	return id, nil
}

func (m *MockMessenger) Edit(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]gateway.Button) error {
	logger.CtxInfo(ctx, "[MOCK] message edited", "chat_id", chatID, "message_id", messageID)
	return nil
}

func (m *MockMessenger) PublishToChannel(ctx context.Context, text string, buttons [][]gateway.Button) (int64, error) {
	id := m.seq.Add(1)
	logger.CtxInfo(ctx, "[MOCK] channel post published", "message_id", id, "text", text)
	return id, nil
}

func (m *MockMessenger) EditChannelPost(ctx context.Context, messageID int64, text string, buttons [][]gateway.Button) error {
	logger.CtxInfo(ctx, "[MOCK] channel post edited", "message_id", messageID)
	return nil
}

// MockPaymentGateway сразу помечает любой платеж как успешный.
// Используется, пока не заданы ключи провайдера.
type MockPaymentGateway struct{}

func (m *MockPaymentGateway) CreateCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.Charge, error) {
	charge := &gateway.Charge{
		ID:              uuid.NewString(),
		Status:          models.PaymentStatusPending,
		Amount:          req.Amount,
		ConfirmationURL: "https://example.com/mock-payment",
	}
	logger.CtxInfo(ctx, "[MOCK] charge created", "charge_id", charge.ID, "amount", req.Amount)
	return charge, nil
}

func (m *MockPaymentGateway) CheckStatus(ctx context.Context, chargeID string) (models.PaymentStatus, error) {
	logger.CtxInfo(ctx, "[MOCK] charge status checked", "charge_id", chargeID)
	return models.PaymentStatusSucceeded, nil
}
