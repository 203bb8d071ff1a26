// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package logging provides the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("username", u).Msg("collection loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("upstream slow")
//
// Components take a zerolog.Logger by value and tag it with a component
// field (see WithComponent). Request-scoped code uses Ctx, which adds the
// request_id set by the HTTP middleware or the chat_id set by the Telegram
// bot.
//
// # slog
//
// SlogHandler adapts zerolog to log/slog for libraries that only accept a
// *slog.Logger, such as the suture event hook.
//
// # Hygiene
//
// Values that come from users go through Sanitize before being logged.
// Secrets (bot token, API token) go through Redact.
package logging
