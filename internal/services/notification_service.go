package services

import (
	"context"
	"fmt"
	"strings"

	"beautymatch_backend/internal/gateway"
	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
)

// NotificationService владеет текстами сообщений и клавиатурами.
// Доставка - через Messenger; сбой доставки логируется и никогда
// не откатывает уже сохраненное состояние.
type NotificationService interface {
	AnnounceRequest(ctx context.Context, req *models.ServiceRequest) (int64, error)
	AnnouncePost(ctx context.Context, post *models.AvailabilityPost) (int64, error)
	RefreshRequestAnnouncement(ctx context.Context, req *models.ServiceRequest) error
	RefreshPostAnnouncement(ctx context.Context, post *models.AvailabilityPost) error

	NotifyNewResponse(ctx context.Context, req *models.ServiceRequest, model *models.User, responseID int64) error
	NotifyResponseAccepted(ctx context.Context, resp *models.ModelResponse, customer, model *models.User) error
	NotifyResponseRejected(ctx context.Context, resp *models.ModelResponse) error
	NotifyNewOffer(ctx context.Context, post *models.AvailabilityPost, customer *models.User) error
}

type notificationService struct {
	messenger gateway.Messenger
}

func NewNotificationService(messenger gateway.Messenger) NotificationService {
	return &notificationService{messenger: messenger}
}

func (s *notificationService) AnnounceRequest(ctx context.Context, req *models.ServiceRequest) (int64, error) {
	return s.messenger.PublishToChannel(ctx, formatRequest(req), [][]gateway.Button{
		{{Text: "Откликнуться", CallbackData: fmt.Sprintf("respond_%d", req.ID)}},
	})
}

func (s *notificationService) AnnouncePost(ctx context.Context, post *models.AvailabilityPost) (int64, error) {
	return s.messenger.PublishToChannel(ctx, formatPost(post), [][]gateway.Button{
		{{Text: "Предложить работу", CallbackData: fmt.Sprintf("offer_%d", post.ID)}},
	})
}

func (s *notificationService) RefreshRequestAnnouncement(ctx context.Context, req *models.ServiceRequest) error {
	if req.MessageID == nil {
		return nil
	}
	var buttons [][]gateway.Button
	text := formatRequest(req)
	if req.IsClosed {
		text += "\n\n❌ Заявка закрыта"
	} else {
		buttons = [][]gateway.Button{
			{{Text: "Откликнуться", CallbackData: fmt.Sprintf("respond_%d", req.ID)}},
		}
	}
	return s.messenger.EditChannelPost(ctx, *req.MessageID, text, buttons)
}

func (s *notificationService) RefreshPostAnnouncement(ctx context.Context, post *models.AvailabilityPost) error {
	if post.MessageID == nil {
		return nil
	}
	var buttons [][]gateway.Button
	text := formatPost(post)
	if post.IsClosed {
		text += "\n\n❌ Пост закрыт"
	} else {
		buttons = [][]gateway.Button{
			{{Text: "Предложить работу", CallbackData: fmt.Sprintf("offer_%d", post.ID)}},
		}
	}
	return s.messenger.EditChannelPost(ctx, *post.MessageID, text, buttons)
}

// NotifyNewResponse отправляет автору заявки анкету откликнувшейся модели
// с кнопками принять/отклонить.
func (s *notificationService) NotifyNewResponse(ctx context.Context, req *models.ServiceRequest, model *models.User, responseID int64) error {
	text := fmt.Sprintf("📩 Новый отклик на вашу заявку «%s»\n\n%s", req.Category, formatModelProfile(model))
	_, err := s.messenger.Send(ctx, req.CustomerID, text, [][]gateway.Button{
		{
			{Text: "✅ Принять", CallbackData: fmt.Sprintf("accept_%d", responseID)},
			{Text: "❌ Отклонить", CallbackData: fmt.Sprintf("reject_%d", responseID)},
		},
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to notify customer about new response", err, "response_id", responseID)
	}
	return err
}

// NotifyResponseAccepted раскрывает контакты модели и отправляет обеим
// сторонам приглашение оценить друг друга.
func (s *notificationService) NotifyResponseAccepted(ctx context.Context, resp *models.ModelResponse, customer, model *models.User) error {
	contactText := fmt.Sprintf(
		"🎉 Ваш отклик принят!\n\nКонтакты заказчика:\n%s\nТелефон: %s\nАдрес: %s",
		displayName(customer), customer.Phone1, customer.Address,
	)
	ratingButtons := ratingKeyboard(resp.ID)

	if _, err := s.messenger.Send(ctx, model.ID, contactText, nil); err != nil {
		logger.CtxWithError(ctx, "failed to send contacts to model", err, "response_id", resp.ID)
		return err
	}
	if _, err := s.messenger.Send(ctx, model.ID, "Оцените сотрудничество после встречи:", ratingButtons); err != nil {
		logger.CtxWithError(ctx, "failed to send rating prompt to model", err, "response_id", resp.ID)
	}
	if _, err := s.messenger.Send(ctx, customer.ID, "Отклик принят. Оцените модель после встречи:", ratingButtons); err != nil {
		logger.CtxWithError(ctx, "failed to send rating prompt to customer", err, "response_id", resp.ID)
	}
	return nil
}

// NotifyResponseRejected - только уведомление, без раскрытия контактов
func (s *notificationService) NotifyResponseRejected(ctx context.Context, resp *models.ModelResponse) error {
	_, err := s.messenger.Send(ctx, resp.ModelID, "К сожалению, ваш отклик отклонен.", nil)
	if err != nil {
		logger.CtxWithError(ctx, "failed to notify model about rejection", err, "response_id", resp.ID)
	}
	return err
}

// NotifyNewOffer - информационное сообщение модели. Кнопок решения нет:
// у оффера нет жизненного цикла.
func (s *notificationService) NotifyNewOffer(ctx context.Context, post *models.AvailabilityPost, customer *models.User) error {
	text := fmt.Sprintf(
		"💼 Заказчик заинтересовался вашим постом от %s\n\n%s\nТелефон: %s",
		post.Date, displayName(customer), customer.Phone1,
	)
	_, err := s.messenger.Send(ctx, post.ModelID, text, nil)
	if err != nil {
		logger.CtxWithError(ctx, "failed to notify model about offer", err, "post_id", post.ID)
	}
	return err
}

// --- Форматирование ---

func formatRequest(req *models.ServiceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💅 %s", req.Category)
	if req.Subcategory != "" {
		fmt.Fprintf(&b, " / %s", req.Subcategory)
	}
	fmt.Fprintf(&b, "\n📍 %s, %s\n📅 %s %s (%s)\n", req.City, req.District, req.Date, req.Time, req.Duration)
	fmt.Fprintf(&b, "👥 Нужно моделей: %d\n", req.ModelsNeeded)
	if req.Requirements != "" {
		fmt.Fprintf(&b, "📋 Требования: %s\n", req.Requirements)
	}
	fmt.Fprintf(&b, "🤝 Тип участия: %s", req.ParticipationType)
	if req.PaymentAmount != nil {
		fmt.Fprintf(&b, "\n💰 Оплата: %s", *req.PaymentAmount)
	}
	if req.DressCode != nil {
		fmt.Fprintf(&b, "\n👗 Дресс-код: %s", *req.DressCode)
	}
	if req.Comment != nil {
		fmt.Fprintf(&b, "\n💬 %s", *req.Comment)
	}
	return b.String()
}

func formatPost(post *models.AvailabilityPost) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🙋 Модель свободна %s\n📍 %s\n💅 %s", post.Date, post.District, post.Category)
	if post.Zones != "" {
		fmt.Fprintf(&b, " (%s)", post.Zones)
	}
	fmt.Fprintf(&b, "\n🕐 %s\n🤝 %s", post.TimeRange, post.ParticipationType)
	if post.Note != nil {
		fmt.Fprintf(&b, "\n💬 %s", *post.Note)
	}
	return b.String()
}

func formatModelProfile(model *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d лет, рост %d\n", displayName(model), model.Age, model.Height)
	fmt.Fprintf(&b, "Район: %s\nТип кожи: %s\n", model.District, model.SkinType)
	if model.Contraindications != "" {
		fmt.Fprintf(&b, "Противопоказания: %s\n", model.Contraindications)
	}
	fmt.Fprintf(&b, "Опыт: %s\nРейтинг: %.1f", model.Experience, model.Rating)
	return b.String()
}

func displayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return "@" + u.Username
}

func ratingKeyboard(responseID int64) [][]gateway.Button {
	row1 := make([]gateway.Button, 0, 5)
	row2 := make([]gateway.Button, 0, 5)
	for score := 1; score <= 10; score++ {
		btn := gateway.Button{
			Text:         fmt.Sprintf("%d", score),
			CallbackData: fmt.Sprintf("rate_%d_%d", responseID, score),
		}
		if score <= 5 {
			row1 = append(row1, btn)
		} else {
			row2 = append(row2, btn)
		}
	}
	return [][]gateway.Button{row1, row2}
}
