// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package main

import (
	"testing"

	"github.com/tomtom215/hotpick/internal/config"
)

func TestBuild_DefaultsWithoutTelegram(t *testing.T) {
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg.Telegram.Token = ""

	a, err := build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.refresh == nil {
		t.Error("refresh service not built")
	}
	if a.http == nil {
		t.Error("http service not built")
	}
	if a.telegram != nil {
		t.Error("telegram service built without a token")
	}
}

func TestBuild_RefreshDisabled(t *testing.T) {
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg.Telegram.Token = ""
	cfg.Refresh.Enabled = false

	a, err := build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.refresh != nil {
		t.Error("refresh service built while disabled")
	}
}

func TestBuild_InvalidMode(t *testing.T) {
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg.Telegram.Token = ""
	cfg.Recommend.Mode = "average"

	if _, err := build(cfg); err == nil {
		t.Fatal("expected engine construction error")
	}
}
