// Package web serves a small status API for a running dialogue loop:
// health, the conversation transcript, and turn statistics. Clients poll;
// the transcript is small and changes at most twice per turn.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/parleylabs/go-parley/pkg/dialogue"
)

// Stats summarizes loop activity since startup.
type Stats struct {
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Turns         int       `json:"turns"`
	LastUserText  string    `json:"last_user_text"`
	LastReplyText string    `json:"last_reply_text"`
	LastTurnAt    time.Time `json:"last_turn_at"`
	Model         string    `json:"model"`
}

// Server exposes the status API over HTTP.
type Server struct {
	app     *fiber.App
	addr    string
	history *dialogue.History
	model   string

	mu       sync.RWMutex
	started  time.Time
	turns    int
	lastUser string
	lastRepl string
	lastAt   time.Time
}

// NewServer creates a status server over the given history. addr is a
// listen address like ":8080".
func NewServer(addr string, history *dialogue.History, model string) *Server {
	s := &Server{
		addr:    addr,
		history: history,
		model:   model,
		started: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Parley Status",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/transcript", s.handleTranscript)
	api.Get("/stats", s.handleStats)

	s.app = app
	return s
}

// RecordTurn updates turn statistics. Wire it to the loop's turn
// callback.
func (s *Server) RecordTurn(turn dialogue.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns++
	s.lastAt = turn.At
	switch turn.Role {
	case dialogue.RoleUser:
		s.lastUser = turn.Text
	case dialogue.RoleAssistant:
		s.lastRepl = turn.Text
	}
}

// Start listens and serves until Shutdown. Blocking.
func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

// StartAsync serves in a goroutine and reports listen failures to errFn.
func (s *Server) StartAsync(errFn func(error)) {
	go func() {
		if err := s.Start(); err != nil && errFn != nil {
			errFn(err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleTranscript(c *fiber.Ctx) error {
	turns := s.history.Turns()
	if turns == nil {
		turns = []dialogue.Turn{}
	}
	return c.JSON(fiber.Map{"turns": turns})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	s.mu.RLock()
	stats := Stats{
		StartedAt:     s.started,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Turns:         s.turns,
		LastUserText:  s.lastUser,
		LastReplyText: s.lastRepl,
		LastTurnAt:    s.lastAt,
		Model:         s.model,
	}
	s.mu.RUnlock()
	return c.JSON(stats)
}
