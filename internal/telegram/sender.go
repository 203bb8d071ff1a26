// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Message is an outgoing chat message.
type Message struct {
	ChatID         int64
	Text           string
	Markdown       bool
	DisablePreview bool

	// Buttons are laid out one per row.
	Buttons []Button
}

// Sender delivers messages to Telegram.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// APISender implements Sender with a tgbotapi.BotAPI.
type APISender struct {
	api *tgbotapi.BotAPI
}

// NewAPISender creates a sender.
func NewAPISender(api *tgbotapi.BotAPI) *APISender {
	return &APISender{api: api}
}

// Send sends msg. tgbotapi has no context support, so ctx is only checked
// before the call.
func (s *APISender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if msg.Markdown {
		out.ParseMode = tgbotapi.ModeMarkdown
	}
	out.DisableWebPagePreview = msg.DisablePreview
	if len(msg.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(msg.Buttons))
		for _, b := range msg.Buttons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data)))
		}
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	if _, err := s.api.Send(out); err != nil {
		return fmt.Errorf("send message to chat %d: %w", msg.ChatID, err)
	}
	return nil
}

// AnswerCallback acknowledges a button press so the client stops its
// loading indicator.
func (s *APISender) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}
