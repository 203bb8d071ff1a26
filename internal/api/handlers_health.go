// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package api

import (
	"net/http"
	"time"
)

// Health handles GET /health
// Always 200 while the process serves requests. An open upstream breaker
// is reported as "degraded". Cache and refresh counters are included when
// their sources are configured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data := HealthData{
		Status:        "ok",
		Version:       h.cfg.Version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	if h.breaker != nil {
		state := h.breaker.BreakerState()
		data.Upstream = map[string]string{"boardgamegeek": state}
		if state == "open" {
			data.Status = "degraded"
		}
	}

	if len(h.caches) > 0 {
		data.Caches = make(map[string]CacheHealth, len(h.caches))
		for name, c := range h.caches {
			s := c.Stats()
			data.Caches[name] = CacheHealth{
				Entries:   s.TotalKeys,
				Hits:      s.Hits,
				Misses:    s.Misses,
				Evictions: s.Evictions,
				HitRate:   s.HitRate(),
			}
		}
	}
	if h.refresh != nil {
		data.Refresh = &RefreshHealth{Runs: h.refresh.Runs(), Failures: h.refresh.Failures()}
	}

	respondSuccess(w, r, start, data)
}
