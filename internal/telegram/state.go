// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package telegram

import (
	"strconv"
	"sync"
	"time"

	"github.com/tomtom215/hotpick/internal/cache"
)

// State is where a chat is in the conversation.
type State int

const (
	// StateIdle accepts commands only; free text gets the usage hint.
	StateIdle State = iota
	// StateAwaitingUsername treats the next text as a BGG username.
	StateAwaitingUsername
	// StateAwaitingBoardgame treats the next text as a search query and
	// accepts a pick from the search keyboard.
	StateAwaitingBoardgame
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateAwaitingUsername:
		return "awaiting_username"
	case StateAwaitingBoardgame:
		return "awaiting_boardgame"
	default:
		return "idle"
	}
}

// conversations tracks per-chat state. An abandoned conversation expires
// back to idle after the TTL; the capacity bound evicts the oldest chats.
type conversations struct {
	states *cache.TTL[State]

	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func newConversations(capacity int, ttl time.Duration, opts ...cache.Option) *conversations {
	return &conversations{
		states: cache.NewTTL[State]("telegram_conversation", capacity, ttl, opts...),
		locks:  make(map[int64]*chatLock),
	}
}

func (c *conversations) get(chatID int64) State {
	s, ok := c.states.Get(key(chatID))
	if !ok {
		return StateIdle
	}
	return s
}

func (c *conversations) set(chatID int64, s State) {
	if s == StateIdle {
		c.states.Delete(key(chatID))
		return
	}
	c.states.Set(key(chatID), s)
}

// lock serializes handling within one chat. The returned func unlocks.
func (c *conversations) lock(chatID int64) func() {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &chatLock{}
		c.locks[chatID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, chatID)
		}
		c.mu.Unlock()
	}
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
