// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package services adapts hotpick components to suture.Service.

  - HTTPServerService: ListenAndServe with a bounded graceful drain
  - HotRefreshService: periodic hot set refresh on a robfig/cron schedule
  - TelegramService: the Telegram long-poll loop, reconnecting on restart

Every wrapper returns ctx.Err() on cancellation and a wrapped error on
failure so the supervisor can decide whether to restart it. Each
implements fmt.Stringer for supervisor event logs.
*/
package services
