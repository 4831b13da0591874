package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"beautymatch_backend/internal/models"

	"github.com/google/uuid"
)

// YooKassaClient - реализация PaymentGateway поверх API ЮKassa.
type YooKassaClient struct {
	apiBase   string
	shopID    string
	secretKey string
	returnURL string
	client    *http.Client
}

func NewYooKassaClient(apiBase, shopID, secretKey, returnURL string) *YooKassaClient {
	return &YooKassaClient{
		apiBase:   apiBase,
		shopID:    shopID,
		secretKey: secretKey,
		returnURL: returnURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type ykAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type ykCreateRequest struct {
	Amount       ykAmount          `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation ykConfirmation    `json:"confirmation"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata"`
}

type ykConfirmation struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
	URL       string `json:"confirmation_url,omitempty"`
}

type ykPayment struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Amount       ykAmount       `json:"amount"`
	Confirmation ykConfirmation `json:"confirmation"`
}

func (y *YooKassaClient) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	payload := ykCreateRequest{
		Amount: ykAmount{
			Value:    fmt.Sprintf("%.2f", req.Amount),
			Currency: "RUB",
		},
		Capture: true,
		Confirmation: ykConfirmation{
			Type:      "redirect",
			ReturnURL: y.returnURL,
		},
		Description: req.Description,
		Metadata: map[string]string{
			"user_id":           strconv.FormatInt(req.UserID, 10),
			"subscription_type": string(req.Role),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, y.apiBase+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(y.shopID, y.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	// Ключ идемпотентности: повтор запроса не создаст второй платеж
	httpReq.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("yookassa create payment: status %d", resp.StatusCode)
	}

	var payment ykPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}

	return &Charge{
		ID:              payment.ID,
		Status:          mapStatus(payment.Status),
		Amount:          req.Amount,
		ConfirmationURL: payment.Confirmation.URL,
	}, nil
}

func (y *YooKassaClient) CheckStatus(ctx context.Context, chargeID string) (models.PaymentStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, y.apiBase+"/payments/"+chargeID, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(y.shopID, y.secretKey)

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("yookassa find payment: status %d", resp.StatusCode)
	}

	var payment ykPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return "", err
	}
	return mapStatus(payment.Status), nil
}

func mapStatus(s string) models.PaymentStatus {
	switch s {
	case "succeeded":
		return models.PaymentStatusSucceeded
	case "canceled":
		return models.PaymentStatusCanceled
	default:
		// waiting_for_capture и pending считаем незавершенными
		return models.PaymentStatusPending
	}
}
