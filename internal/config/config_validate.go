// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/hotpick/internal/validation"
)

// Validate checks field constraints from struct tags, then the rules that
// span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	validators := []func() error{
		c.validateServer,
		c.validateTopN,
		c.validateBGG,
		c.validateRecommend,
		c.validateRefresh,
		c.validateTelegram,
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer requires some front end to be running.
func (c *Config) validateServer() error {
	if !c.Server.Enabled && !c.Telegram.Enabled() {
		return fmt.Errorf("nothing to serve: set HTTP_ENABLED=true or TELEGRAM_TOKEN")
	}
	return nil
}

// validateTopN keeps the defaults within their caps.
func (c *Config) validateTopN() error {
	if c.API.DefaultTopN > c.API.MaxTopN {
		return fmt.Errorf("API_DEFAULT_TOP_N (%d) must not exceed API_MAX_TOP_N (%d)", c.API.DefaultTopN, c.API.MaxTopN)
	}
	if c.Recommend.DefaultTopN > c.Recommend.MaxTopN {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N (%d) must not exceed RECOMMEND_MAX_TOP_N (%d)",
			c.Recommend.DefaultTopN, c.Recommend.MaxTopN)
	}
	if c.API.MaxTopN > c.Recommend.MaxTopN {
		return fmt.Errorf("API_MAX_TOP_N (%d) must not exceed RECOMMEND_MAX_TOP_N (%d)", c.API.MaxTopN, c.Recommend.MaxTopN)
	}
	if c.Telegram.TopN > c.Recommend.MaxTopN {
		return fmt.Errorf("TELEGRAM_TOP_N (%d) must not exceed RECOMMEND_MAX_TOP_N (%d)", c.Telegram.TopN, c.Recommend.MaxTopN)
	}
	return nil
}

func (c *Config) validateBGG() error {
	if err := validateHTTPURL(c.BGG.BaseURL, "BGG_BASE_URL"); err != nil {
		return err
	}
	if c.BGG.RetryWaitMin > c.BGG.RetryWaitMax {
		return fmt.Errorf("BGG_RETRY_WAIT_MIN (%v) must not exceed BGG_RETRY_WAIT_MAX (%v)",
			c.BGG.RetryWaitMin, c.BGG.RetryWaitMax)
	}
	return nil
}

// validateRecommend rejects duplicate filters.
func (c *Config) validateRecommend() error {
	seen := make(map[string]struct{}, len(c.Recommend.Filters))
	for _, f := range c.Recommend.Filters {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("COLLECTION_FILTERS lists %q twice", f)
		}
		seen[f] = struct{}{}
	}
	return validateHTTPURL(c.Recommend.LinkBaseURL, "LINK_BASE_URL")
}

func (c *Config) validateRefresh() error {
	if !c.Refresh.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(c.Refresh.Schedule); err != nil {
		return fmt.Errorf("HOT_REFRESH_SCHEDULE %q is invalid: %w", c.Refresh.Schedule, err)
	}
	return nil
}

func (c *Config) validateTelegram() error {
	if !c.Telegram.Enabled() || c.Telegram.APIEndpoint == "" {
		return nil
	}
	// tgbotapi formats the endpoint with the token and the method name.
	if strings.Count(c.Telegram.APIEndpoint, "%s") != 2 {
		return fmt.Errorf("TELEGRAM_API_ENDPOINT must contain two %%s placeholders (token, method)")
	}
	return validateHTTPURL(strings.ReplaceAll(c.Telegram.APIEndpoint, "%s", "x"), "TELEGRAM_API_ENDPOINT")
}
