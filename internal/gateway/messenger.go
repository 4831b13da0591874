package gateway

import "context"

// Button - кнопка инлайн-клавиатуры под сообщением
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Messenger - доставка сообщений пользователям и в общий канал.
// Бизнес-логика не знает деталей транспорта: в проде это Telegram,
// в тестах - мок.
type Messenger interface {
	// Send отправляет личное сообщение, возвращает ID сообщения
	Send(ctx context.Context, chatID int64, text string, buttons [][]Button) (int64, error)
	// Edit правит ранее отправленное сообщение
	Edit(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]Button) error
	// PublishToChannel публикует объявление в общий канал
	PublishToChannel(ctx context.Context, text string, buttons [][]Button) (int64, error)
	// EditChannelPost правит опубликованное объявление
	EditChannelPost(ctx context.Context, messageID int64, text string, buttons [][]Button) error
}
