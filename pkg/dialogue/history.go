// Package dialogue holds the turn history, the prompt builder, and the
// loop that ties listening, generation, sanitization, and speech output
// into a perpetual turn cycle.
package dialogue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the conversation a turn belongs to.
type Role string

const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// Turn is one side's finalized contribution to the conversation.
type Turn struct {
	ID   string    `json:"id"`
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// History is an append-only, ordered log of turns. Append is the only
// mutator and is called only with finalized text, never with partial
// recognition results. Safe for concurrent readers (the status server
// polls it while the loop appends).
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records a finalized turn and returns it.
func (h *History) Append(role Role, text string) Turn {
	turn := Turn{
		ID:   uuid.New().String(),
		Role: role,
		Text: text,
		At:   time.Now(),
	}
	h.mu.Lock()
	h.turns = append(h.turns, turn)
	h.mu.Unlock()
	return turn
}

// Turns returns a copy of all turns in insertion order.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Turn(nil), h.turns...)
}

// Window returns a copy of the last k turns, or all turns when fewer
// than k exist.
func (h *History) Window(k int) []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if k <= 0 {
		return nil
	}
	n := len(h.turns)
	if n > k {
		return append([]Turn(nil), h.turns[n-k:]...)
	}
	return append([]Turn(nil), h.turns...)
}

// Len returns the number of turns recorded.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
