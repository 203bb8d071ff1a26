// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/cache"
	"github.com/tomtom215/hotpick/internal/catalog"
	"github.com/tomtom215/hotpick/internal/logging"
	"github.com/tomtom215/hotpick/internal/metrics"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// Suggester is what the bot needs from the suggestion service.
type Suggester interface {
	RankAgainstItem(ctx context.Context, itemID string, topN int, format string) (*recommend.Result, error)
	RankAgainstUser(ctx context.Context, username string, topN int, format string) (*recommend.Result, error)
	Search(ctx context.Context, query string) ([]catalog.Candidate, error)
}

// Config configures the bot.
type Config struct {
	// TopN is the number of suggestions sent per request.
	TopN int

	// MaxSearchButtons caps the disambiguation keyboard.
	MaxSearchButtons int

	// RequestTimeout bounds the handling of one update.
	RequestTimeout time.Duration

	// ConversationTTL resets an abandoned conversation to idle.
	ConversationTTL time.Duration

	// MaxConversations bounds tracked chats.
	MaxConversations int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		TopN:             5,
		MaxSearchButtons: 20,
		RequestTimeout:   3 * time.Minute,
		ConversationTTL:  30 * time.Minute,
		MaxConversations: 10000,
	}
}

// Bot runs the chat conversation:
//
//	/username -> awaiting_username -> text: suggestions for that user
//	/boardgame -> awaiting_boardgame -> text: search keyboard -> pick: suggestions for that game
//
// Domain errors are sent to the user and keep the chat in its awaiting
// state so the user can try again. Success or an unexpected error returns
// the chat to idle.
type Bot struct {
	svc    Suggester
	sender Sender
	cfg    Config
	convs  *conversations
	logger zerolog.Logger
}

// NewBot creates a bot.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBot(svc Suggester, sender Sender, cfg Config, logger zerolog.Logger, opts ...cache.Option) *Bot {
	def := DefaultConfig()
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.MaxSearchButtons <= 0 {
		cfg.MaxSearchButtons = def.MaxSearchButtons
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.ConversationTTL <= 0 {
		cfg.ConversationTTL = def.ConversationTTL
	}
	if cfg.MaxConversations <= 0 {
		cfg.MaxConversations = def.MaxConversations
	}

	return &Bot{
		svc:    svc,
		sender: sender,
		cfg:    cfg,
		convs:  newConversations(cfg.MaxConversations, cfg.ConversationTTL, opts...),
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

// State returns the conversation state of a chat.
func (b *Bot) State(chatID int64) State {
	return b.convs.get(chatID)
}

// HandleUpdate processes one update. Updates of the same chat are handled
// one at a time.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID, kind := classify(update)
	metrics.TelegramUpdates.WithLabelValues(kind).Inc()
	if kind == "ignored" {
		return
	}

	unlock := b.convs.lock(chatID)
	defer unlock()

	ctx, cancel := context.WithTimeout(logging.ContextWithChatID(ctx, chatID), b.cfg.RequestTimeout)
	defer cancel()

	switch kind {
	case "callback":
		b.handleCallback(ctx, chatID, update.CallbackQuery)
	case "command":
		b.handleCommand(ctx, chatID, update.Message.Command())
	default:
		b.handleText(ctx, chatID, strings.TrimSpace(update.Message.Text))
	}
}

func classify(update tgbotapi.Update) (int64, string) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, "callback"
	case update.Message != nil && update.Message.Chat != nil && update.Message.IsCommand():
		return update.Message.Chat.ID, "command"
	case update.Message != nil && update.Message.Chat != nil && update.Message.Text != "":
		return update.Message.Chat.ID, "text"
	default:
		return 0, "ignored"
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start":
		b.convs.set(chatID, StateIdle)
		b.send(ctx, Message{ChatID: chatID, Text: StartMessage})
	case "help":
		b.send(ctx, Message{ChatID: chatID, Text: HelpMessage, Markdown: true, DisablePreview: true})
	case "username":
		b.convs.set(chatID, StateAwaitingUsername)
		b.send(ctx, Message{ChatID: chatID, Text: AskForUsername})
	case "boardgame":
		b.convs.set(chatID, StateAwaitingBoardgame)
		b.send(ctx, Message{ChatID: chatID, Text: AskForBoardgameName})
	default:
		b.send(ctx, Message{ChatID: chatID, Text: HowToUseIt})
	}
}

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	switch b.convs.get(chatID) {
	case StateAwaitingUsername:
		b.suggestForUser(ctx, chatID, text)
	case StateAwaitingBoardgame:
		b.offerBoardgames(ctx, chatID, text)
	default:
		b.send(ctx, Message{ChatID: chatID, Text: HowToUseIt})
	}
}

func (b *Bot) suggestForUser(ctx context.Context, chatID int64, username string) {
	log := logging.Ctx(ctx)
	log.Info().Str("username", logging.Sanitize(username)).Msg("get suggestions for user")

	b.send(ctx, Message{ChatID: chatID, Text: fmt.Sprintf(introTemplate, username+"'s BGG collection")})

	res, err := b.svc.RankAgainstUser(ctx, username, b.cfg.TopN, string(recommend.FormatText))
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	b.sendSuggestions(ctx, chatID, res)
	b.convs.set(chatID, StateIdle)
}

func (b *Bot) offerBoardgames(ctx context.Context, chatID int64, query string) {
	logging.Ctx(ctx).Info().Str("query", logging.Sanitize(query)).Msg("get suggestions for boardgame")

	b.send(ctx, Message{ChatID: chatID, Text: fmt.Sprintf(introTemplate, capitalize(query))})

	found, err := b.svc.Search(ctx, query)
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	if len(found) > b.cfg.MaxSearchButtons {
		found = found[:b.cfg.MaxSearchButtons]
	}

	buttons := make([]Button, 0, len(found))
	for _, c := range found {
		buttons = append(buttons, Button{Text: buttonLabel(c), Data: c.ID})
	}
	// The chat stays in awaiting_boardgame until a button is picked.
	b.send(ctx, Message{ChatID: chatID, Text: OptionMessage, Buttons: buttons})
}

func (b *Bot) handleCallback(ctx context.Context, chatID int64, q *tgbotapi.CallbackQuery) {
	if err := b.sender.AnswerCallback(ctx, q.ID); err != nil {
		metrics.TelegramSendErrors.Inc()
		b.logger.Warn().Err(err).Msg("failed to answer callback")
	}

	itemID := strings.TrimSpace(q.Data)
	if itemID == "" {
		return
	}
	logging.Ctx(ctx).Info().Str("item_id", logging.Sanitize(itemID)).Msg("boardgame picked")

	res, err := b.svc.RankAgainstItem(ctx, itemID, b.cfg.TopN, string(recommend.FormatText))
	if err != nil {
		b.fail(ctx, chatID, err)
		return
	}
	b.sendSuggestions(ctx, chatID, res)
	b.convs.set(chatID, StateIdle)
}

// sendSuggestions sends one Markdown message per suggestion.
func (b *Bot) sendSuggestions(ctx context.Context, chatID int64, res *recommend.Result) {
	for _, text := range res.Text {
		b.send(ctx, Message{ChatID: chatID, Text: text, Markdown: true})
	}
}

// fail reports err to the user. Domain errors keep the conversation state;
// anything else resets it.
func (b *Bot) fail(ctx context.Context, chatID int64, err error) {
	if recommend.KindOf(err) == 0 {
		logging.Ctx(ctx).Error().Err(err).Msg("unexpected error handling chat update")
		b.convs.set(chatID, StateIdle)
	} else {
		logging.Ctx(ctx).Info().Str("kind", recommend.KindOf(err).String()).Msg("domain error sent to user")
	}
	b.send(ctx, Message{ChatID: chatID, Text: recommend.UserMessage(err)})
}

func (b *Bot) send(ctx context.Context, msg Message) {
	if err := b.sender.Send(ctx, msg); err != nil {
		metrics.TelegramSendErrors.Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to send telegram message")
	}
}

func buttonLabel(c catalog.Candidate) string {
	if c.Year == "" {
		return c.Name
	}
	return c.Name + " (" + c.Year + ")"
}
