// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package telegram is the chat front end.
//
// Commands: /start, /help, /username, /boardgame. A chat is idle,
// awaiting_username or awaiting_boardgame; the state lives in a TTL cache
// so abandoned conversations expire. Board game search replies with an
// inline keyboard of "Name (Year)" buttons carrying the item id.
//
// Bot is transport-free: it talks to Telegram through Sender, and Poller
// feeds it updates from tgbotapi long polling.
package telegram
