package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramMessenger - реализация Messenger через Bot API.
type TelegramMessenger struct {
	apiBase   string
	botToken  string
	channelID int64
	client    *http.Client
}

func NewTelegramMessenger(apiBase, botToken string, channelID int64) *TelegramMessenger {
	return &TelegramMessenger{
		apiBase:   apiBase,
		botToken:  botToken,
		channelID: channelID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type tgSendRequest struct {
	ChatID      int64       `json:"chat_id"`
	MessageID   int64       `json:"message_id,omitempty"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup *tgKeyboard `json:"reply_markup,omitempty"`
}

type tgKeyboard struct {
	InlineKeyboard [][]Button `json:"inline_keyboard"`
}

type tgResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

func (t *TelegramMessenger) Send(ctx context.Context, chatID int64, text string, buttons [][]Button) (int64, error) {
	return t.call(ctx, "sendMessage", tgSendRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard(buttons),
	})
}

func (t *TelegramMessenger) Edit(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]Button) error {
	_, err := t.call(ctx, "editMessageText", tgSendRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: keyboard(buttons),
	})
	return err
}

func (t *TelegramMessenger) PublishToChannel(ctx context.Context, text string, buttons [][]Button) (int64, error) {
	return t.call(ctx, "sendMessage", tgSendRequest{
		ChatID:      t.channelID,
		Text:        text,
		ReplyMarkup: keyboard(buttons),
	})
}

func (t *TelegramMessenger) EditChannelPost(ctx context.Context, messageID int64, text string, buttons [][]Button) error {
	_, err := t.call(ctx, "editMessageText", tgSendRequest{
		ChatID:      t.channelID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: keyboard(buttons),
	})
	return err
}

func (t *TelegramMessenger) call(ctx context.Context, method string, payload tgSendRequest) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.apiBase, t.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var tgResp tgResponse
	if err := json.NewDecoder(resp.Body).Decode(&tgResp); err != nil {
		return 0, err
	}
	if !tgResp.OK {
		return 0, fmt.Errorf("telegram %s: %s", method, tgResp.Description)
	}
	return tgResp.Result.MessageID, nil
}

func keyboard(buttons [][]Button) *tgKeyboard {
	if len(buttons) == 0 {
		return nil
	}
	return &tgKeyboard{InlineKeyboard: buttons}
}
