// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
)

func sampleSuggestions() []Suggestion {
	return []Suggestion{
		{
			ID:            "342942",
			Name:          "Ark Nova",
			TotalAffinity: 0.75,
			BecauseYouAlsoLike: []Reason{
				{LikedName: "Terraforming Mars", CommonFeatures: []string{"Hand Management", "Tile Placement", "Card Drafting", "Variable Player Powers"}, Score: 0.75},
				{LikedName: "Wingspan", CommonFeatures: []string{"Hand Management"}, Score: 0.25},
			},
		},
		{
			ID:                 "2",
			Name:               "B",
			TotalAffinity:      0,
			BecauseYouAlsoLike: []Reason{{LikedName: "C", CommonFeatures: []string{}, Score: 0}},
		},
	}
}

func TestRender_Shapes(t *testing.T) {
	in := sampleSuggestions()

	tests := []struct {
		format string
		want   Format
	}{
		{"structured", FormatStructured},
		{"dict", FormatStructured},
		{"tabular", FormatTabular},
		{"dataframe", FormatTabular},
		{"text", FormatText},
		{"markdown", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res, err := Render(in, tt.format, "")
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if res.Format != tt.want {
				t.Errorf("Format = %s, want %s", res.Format, tt.want)
			}
			if res.Len() != len(in) {
				t.Errorf("Len = %d, want %d", res.Len(), len(in))
			}
		})
	}
}

func TestRender_InvalidFormat(t *testing.T) {
	_, err := Render(sampleSuggestions(), "xml", "")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestRender_StructuredEmptyIsNotNil(t *testing.T) {
	res, err := Render(nil, "structured", "")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.Suggestions == nil {
		t.Error("Expected empty, non-nil suggestion list")
	}
}

func TestMarkdown(t *testing.T) {
	s := sampleSuggestions()[0]
	got := Markdown(&s, DefaultBaseURL)

	want := "*Ark Nova* (0.75) \n" +
		"🔗 https://boardgamegeek.com/boardgame/342942 \n" +
		"❤ because you also like:" +
		"\n - '_Terraforming Mars_' (0.75) with Hand Management, Tile Placement, Card Drafting, ..." +
		"\n - '_Wingspan_' (0.25) with Hand Management, ......"
	if got != want {
		t.Errorf("Markdown mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestMarkdown_AtMostThreeReasons(t *testing.T) {
	s := Suggestion{ID: "1", Name: "A"}
	for _, n := range []string{"a", "b", "c", "d"} {
		s.BecauseYouAlsoLike = append(s.BecauseYouAlsoLike, Reason{LikedName: n, CommonFeatures: []string{"x"}, Score: 1})
	}
	got := Markdown(&s, "https://example.test/game/")
	if strings.Contains(got, "'_d_'") {
		t.Error("Expected at most three reasons")
	}
	if !strings.Contains(got, "https://example.test/game/1 ") {
		t.Errorf("Expected trailing slash to be trimmed from base URL, got %q", got)
	}
}

func TestMarkdown_EscapesReservedCharacters(t *testing.T) {
	s := Suggestion{
		ID:            "7",
		Name:          "Foo_Bar*",
		TotalAffinity: 0.5,
		BecauseYouAlsoLike: []Reason{
			{LikedName: "snake_case", CommonFeatures: []string{"[Promo]", "`code`"}, Score: 0.5},
		},
	}
	got := Markdown(&s, "https://example.test/game")

	want := "*Foo*\\_*Bar*\\* (0.50) \n" +
		"🔗 https://example.test/game/7 \n" +
		"❤ because you also like:" +
		"\n - '_snake_\\__case_' (0.50) with \\[Promo], \\`code\\`, ......"
	if got != want {
		t.Errorf("Markdown mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRowsAndCSV(t *testing.T) {
	rows := Rows(sampleSuggestions())
	if rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Errorf("ranks = %d, %d; want 1, 2", rows[0].Rank, rows[1].Rank)
	}
	wantReasons := "Terraforming Mars (0.75): Hand Management, Tile Placement, Card Drafting, Variable Player Powers; Wingspan (0.25): Hand Management"
	if rows[0].BecauseYouAlsoLike != wantReasons {
		t.Errorf("flattened reasons = %q", rows[0].BecauseYouAlsoLike)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(RowHeader, ",") {
		t.Errorf("header = %v", records[0])
	}
	if records[1][2] != "Ark Nova" || records[1][5] != "0.7500" {
		t.Errorf("row = %v", records[1])
	}
}
