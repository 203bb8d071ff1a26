// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package bgg is the BoardGameGeek XML API2 client.

Every request goes through three layers:

  - golang.org/x/time/rate paces requests (BGG throttles aggressive clients)
  - sony/gobreaker opens after sustained failures so a BGG outage fails fast
  - hashicorp/go-retryablehttp retries connection errors, 429 and 5xx

Responses are decoded with encoding/xml. Item descriptions arrive as
HTML-flavoured text and are flattened with goquery.

A 202 from /collection means BGG is still preparing the export; Collection
reports it as an empty collection so the caller's retry policy applies.
*/
package bgg
