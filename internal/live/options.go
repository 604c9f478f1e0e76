package live

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/query"
)

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithDispatcher sets where subscriber callbacks run. Defaults to Immediate.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDefaultTitle sets the title shown for sections without a category name.
func WithDefaultTitle(title string) Option {
	return func(e *Engine) { e.defaultTitle = title }
}

// WithDate sets the initially selected date. Defaults to the clock's now.
func WithDate(d time.Time) Option {
	return func(e *Engine) { e.state.Date = d }
}

// WithStatus sets the initial status filter.
func WithStatus(s query.Status) Option {
	return func(e *Engine) { e.state.Status = s }
}
