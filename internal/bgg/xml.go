// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package bgg

import (
	"encoding/xml"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// XML API2 response shapes. Only the fields hotpick reads are mapped.

type valueAttr struct {
	Value string `xml:"value,attr"`
}

// hotResponse is /hot?type=boardgame.
type hotResponse struct {
	Items []hotItem `xml:"item"`
}

type hotItem struct {
	ID            string    `xml:"id,attr"`
	Rank          int       `xml:"rank,attr"`
	Thumbnail     valueAttr `xml:"thumbnail"`
	Name          valueAttr `xml:"name"`
	YearPublished valueAttr `xml:"yearpublished"`
}

// searchResponse is /search?type=boardgame&query=.
type searchResponse struct {
	Items []searchItem `xml:"item"`
}

type searchItem struct {
	ID            string      `xml:"id,attr"`
	Names         []thingName `xml:"name"`
	YearPublished valueAttr   `xml:"yearpublished"`
}

// thingResponse is /thing?id=.
type thingResponse struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	ID          string      `xml:"id,attr"`
	Type        string      `xml:"type,attr"`
	Thumbnail   string      `xml:"thumbnail"`
	Names       []thingName `xml:"name"`
	Description string      `xml:"description"`
	Links       []thingLink `xml:"link"`
}

type thingName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type thingLink struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

// collectionResponse is /collection?username=. The same document root is
// <items> on success, <errors> for an unknown user and <message> while
// the collection is still being prepared.
type collectionResponse struct {
	XMLName  xml.Name
	Items    []collectionItem `xml:"item"`
	Messages []string         `xml:"error>message"`
}

type collectionItem struct {
	ObjectID string           `xml:"objectid,attr"`
	Name     string           `xml:"name"`
	NumPlays int              `xml:"numplays"`
	Status   collectionStatus `xml:"status"`
}

type collectionStatus struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// flags returns the 0/1 status attributes as booleans. lastmodified and
// other non-flag attributes are skipped.
func (s collectionStatus) flags() map[string]bool {
	out := make(map[string]bool, len(s.Attrs))
	for _, a := range s.Attrs {
		switch a.Value {
		case "1":
			out[a.Name.Local] = true
		case "0":
			out[a.Name.Local] = false
		}
	}
	return out
}

// primaryName picks the primary name, falling back to the first one.
func primaryName(names []thingName) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

var lineBreaks = strings.NewReplacer("<br/>", "\n", "<br />", "\n", "<br>", "\n")

// cleanDescription turns BGG's HTML-flavoured description into plain text.
// After XML unescaping the text may still hold tags (<br/>) and HTML
// entities (&mdash;), which the HTML parser resolves.
func cleanDescription(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = lineBreaks.Replace(raw)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	lines := strings.Split(doc.Text(), "\n")
	out := lines[:0]
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
