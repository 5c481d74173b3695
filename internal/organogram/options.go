package organogram

import (
	"log/slog"
	"time"
)

// Defaults applied when no Option overrides them.
const (
	DefaultDiaryWindow    = 7 * 24 * time.Hour
	DefaultMessageLimit   = 5
	DefaultReadyTaskLimit = 3
	DefaultAgentName      = "Feature Agent"
)

type settings struct {
	now            func() time.Time
	diaryWindow    time.Duration
	messageLimit   int
	readyTaskLimit int
	agentName      string
	logger         *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		now:            time.Now,
		diaryWindow:    DefaultDiaryWindow,
		messageLimit:   DefaultMessageLimit,
		readyTaskLimit: DefaultReadyTaskLimit,
		agentName:      DefaultAgentName,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an Assembler, Journal or Overview.
type Option func(*settings)

// WithClock sets the source of "now" used for the diary window and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDiaryWindow sets how far back diary entries are gathered.
func WithDiaryWindow(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.diaryWindow = d
		}
	}
}

// WithMessageLimit caps the unread messages listed in the overview.
func WithMessageLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.messageLimit = n
		}
	}
}

// WithReadyTaskLimit caps the ready tasks listed in the overview.
func WithReadyTaskLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.readyTaskLimit = n
		}
	}
}

// WithAgentName sets the agent recorded on diary entries when a WorkLog leaves it empty.
func WithAgentName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.agentName = name
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
