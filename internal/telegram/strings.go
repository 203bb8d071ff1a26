// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package telegram

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chat copy (English).
const (
	StartMessage = "Hi! Start getting suggestions or use the /help command for further details"

	HowToUseIt = "🧪In order to test it, just use the /username command and follow the instructions.\n" +
		"🎴We also offer a single-boardgame-based version of the suggestions, use the /boardgame command " +
		"to test it"

	HelpMessage = "Hi and welcome in this BGG games suggestion system.\n" +
		"\n" +
		"🧠The idea behind these suggestions is wee explained on " +
		"[GitHub](https://github.com/informatica92/BGG-suggestions)\n" +
		"\n" +
		"❓ In a nutshell:\n" +
		"1. you send us your BGG username\n" +
		"2. we analyze your boardgames collection\n" +
		"NB: only 'own', 'want to play', 'want to buy'...\n" +
		"3. then we do the same with the [hotness](https://boardgamegeek.com/hotness)\n" +
		"4. we cross-check both the results\n" +
		"5. we return the top 5 games that fit the most\n" +
		"\n" +
		HowToUseIt

	AskForUsername = "📝 Ok, tell me your BGG username\n" +
		"EG: if your username is 'test001', just send it as it is"

	AskForBoardgameName = "📝 Ok, tell me the name of the boardgame\n" +
		"EG: if you want to get suggestions related to 'Takenoko', just send it"

	introTemplate = "⌛ A list of suggestion related to %s is coming..."

	OptionMessage = "🔀 Which one of these are you referring at?"
)

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
