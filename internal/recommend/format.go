// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Format is an output shape for ranked suggestions.
type Format string

const (
	// FormatStructured returns the suggestion list as-is.
	FormatStructured Format = "structured"
	// FormatTabular flattens suggestions to rows.
	FormatTabular Format = "tabular"
	// FormatText renders one Markdown block per suggestion.
	FormatText Format = "text"
)

// DefaultBaseURL is the deep link prefix for suggestions.
const DefaultBaseURL = "https://boardgamegeek.com/boardgame"

// maxReasonFeatures is how many common features a text reason lists.
const maxReasonFeatures = 3

var formatAliases = map[string]Format{
	"structured": FormatStructured,
	"dict":       FormatStructured,
	"tabular":    FormatTabular,
	"dataframe":  FormatTabular,
	"text":       FormatText,
	"markdown":   FormatText,
}

func formatNames() []string {
	return []string{"structured", "dict", "tabular", "dataframe", "text", "markdown"}
}

// ParseFormat resolves a format name or alias.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[s]
	if !ok {
		return "", InvalidFormat(s)
	}
	return f, nil
}

// Row is a flattened suggestion.
type Row struct {
	Rank               int     `json:"rank"`
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Thumbnail          string  `json:"thumbnail"`
	Description        string  `json:"description"`
	TotalAffinity      float64 `json:"total_affinity"`
	BecauseYouAlsoLike string  `json:"because_you_also_like"`
}

// RowHeader is the tabular column order.
var RowHeader = []string{"rank", "id", "name", "thumbnail", "description", "total_affinity", "because_you_also_like"}

// Result holds exactly one populated shape, selected by Format.
type Result struct {
	Format      Format       `json:"format"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Rows        []Row        `json:"rows,omitempty"`
	Text        []string     `json:"text,omitempty"`
}

// Len returns the number of suggestions in the result.
func (r *Result) Len() int {
	switch r.Format {
	case FormatTabular:
		return len(r.Rows)
	case FormatText:
		return len(r.Text)
	default:
		return len(r.Suggestions)
	}
}

// Render shapes suggestions without recomputing them. An empty baseURL
// selects DefaultBaseURL.
func Render(suggestions []Suggestion, format, baseURL string) (*Result, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	res := &Result{Format: f}
	switch f {
	case FormatStructured:
		res.Suggestions = suggestions
		if res.Suggestions == nil {
			res.Suggestions = []Suggestion{}
		}
	case FormatTabular:
		res.Rows = Rows(suggestions)
	case FormatText:
		res.Text = make([]string, 0, len(suggestions))
		for i := range suggestions {
			res.Text = append(res.Text, Markdown(&suggestions[i], baseURL))
		}
	}
	return res, nil
}

// Rows flattens suggestions into table rows, ranked from 1.
func Rows(suggestions []Suggestion) []Row {
	rows := make([]Row, 0, len(suggestions))
	for i := range suggestions {
		s := &suggestions[i]
		rows = append(rows, Row{
			Rank:               i + 1,
			ID:                 s.ID,
			Name:               s.Name,
			Thumbnail:          s.Thumbnail,
			Description:        s.Description,
			TotalAffinity:      s.TotalAffinity,
			BecauseYouAlsoLike: flattenReasons(s.BecauseYouAlsoLike),
		})
	}
	return rows
}

// flattenReasons renders reasons as "Name (0.75): x, y; Other (0.50): z".
func flattenReasons(reasons []Reason) string {
	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		parts = append(parts, fmt.Sprintf("%s (%.2f): %s", r.LikedName, r.Score, strings.Join(r.CommonFeatures, ", ")))
	}
	return strings.Join(parts, "; ")
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RowHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.ID,
			r.Name,
			r.Thumbnail,
			r.Description,
			strconv.FormatFloat(r.TotalAffinity, 'f', 4, 64),
			r.BecauseYouAlsoLike,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Markdown renders one suggestion as a Telegram-flavoured Markdown block:
//
//	*Name* (0.75)
//	🔗 <baseURL>/<id>
//	❤ because you also like:
//	 - '_Liked_' (0.75) with x, y, z, ......
func Markdown(s *Suggestion, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%.2f) \n", markdownEntity("*", s.Name), s.TotalAffinity)
	fmt.Fprintf(&b, "🔗 %s/%s \n", escapeMarkdown(strings.TrimRight(baseURL, "/")), escapeMarkdown(s.ID))
	b.WriteString("❤ because you also like:")

	reasons := s.BecauseYouAlsoLike
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	for _, r := range reasons {
		fmt.Fprintf(&b, "\n - '%s' (%.2f) with ", markdownEntity("_", r.LikedName), r.Score)
		features := r.CommonFeatures
		if len(features) > maxReasonFeatures {
			features = features[:maxReasonFeatures]
		}
		for _, f := range features {
			b.WriteString(escapeMarkdown(f))
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString("...")
	return b.String()
}

// markdownReserved are the characters legacy Telegram Markdown treats as
// markup.
const markdownReserved = "_*`["

func escapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// markdownEntity wraps s in marker. Escapes are not allowed inside an
// entity, so each reserved character closes it, appears escaped on its own,
// and the entity reopens after it. Empty segments get no markers.
func markdownEntity(marker, s string) string {
	var b strings.Builder
	seg := 0
	flush := func(end int) {
		if end > seg {
			b.WriteString(marker)
			b.WriteString(s[seg:end])
			b.WriteString(marker)
		}
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(markdownReserved, s[i]) < 0 {
			continue
		}
		flush(i)
		b.WriteByte('\\')
		b.WriteByte(s[i])
		seg = i + 1
	}
	flush(len(s))
	return b.String()
}
