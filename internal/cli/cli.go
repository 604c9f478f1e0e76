package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sadopc/habitr/internal/analytics"
	"github.com/sadopc/habitr/internal/config"
	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/logger"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

// CLI is the kong grammar. Global flags are applied by main before any
// command runs.
type CLI struct {
	Config string `help:"Path to config.yaml." type:"path" env:"HABITR_CONFIG"`
	DB     string `help:"Path to the SQLite database (overrides config)." type:"path"`
	Debug  bool   `help:"Log debug output to stderr."`

	Tui        TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add        AddCmd        `cmd:"" help:"Add a tracker."`
	Edit       EditCmd       `cmd:"" help:"Edit a tracker."`
	List       ListCmd       `cmd:"" help:"List trackers for a day."`
	Toggle     ToggleCmd     `cmd:"" help:"Mark or unmark a tracker as done for a day."`
	Delete     DeleteCmd     `cmd:"" help:"Delete a tracker and its records."`
	Categories CategoriesCmd `cmd:"" help:"List or create categories."`
	Stats      StatsCmd      `cmd:"" help:"Show completion statistics."`
	Settings   SettingsCmd   `cmd:"" help:"Show or change settings."`
}

// Context is shared by every command.
type Context struct {
	Store     *store.Store
	Config    *config.Config
	Analytics *analytics.Service
	Clock     clockwork.Clock
	Out       io.Writer
}

func (c *Context) clock() clockwork.Clock {
	if c.Clock == nil {
		return clockwork.NewRealClock()
	}
	return c.Clock
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// NewEngine builds a live engine over the store with the configured section
// title and the stored default filter. opts are applied last.
func (c *Context) NewEngine(opts ...live.Option) *live.Engine {
	title := live.DefaultSectionTitle
	if c.Config != nil {
		title = c.Config.UI.DefaultCategoryTitle
	}
	base := []live.Option{
		live.WithClock(c.clock()),
		live.WithDefaultTitle(title),
		live.WithStatus(c.defaultStatus()),
	}
	return live.New(c.Store, append(base, opts...)...)
}

func (c *Context) defaultStatus() query.Status {
	raw := c.Store.SettingOr(store.SettingDefaultFilter, "")
	st, err := query.ParseStatus(raw)
	if err != nil {
		logger.Warn("ignoring stored default filter", "value", raw, "err", err)
		return query.StatusNone
	}
	return st
}

func (c *Context) defaultCategory() string {
	return c.Store.SettingOr(store.SettingDefaultCategory, "")
}

// resolveTracker finds a tracker by id or, failing that, by name.
func (c *Context) resolveTracker(ref string) (tracker.Tracker, string, error) {
	if id, err := uuid.Parse(ref); err == nil {
		t, category, err := c.Store.GetTracker(id)
		if err != nil {
			return tracker.Tracker{}, "", err
		}
		return t, category, nil
	}

	rows, err := c.Store.FetchTrackers(store.TrackerNamed(ref))
	if err != nil {
		return tracker.Tracker{}, "", err
	}
	switch len(rows) {
	case 0:
		return tracker.Tracker{}, "", fmt.Errorf("tracker %q: %w", ref, store.ErrNotFound)
	case 1:
	default:
		return tracker.Tracker{}, "", fmt.Errorf("tracker name %q is ambiguous, use its id", ref)
	}
	t, err := rows[0].Decode()
	if err != nil {
		return tracker.Tracker{}, "", err
	}
	return t, rows[0].Category, nil
}

// parseDate accepts "", "today", "yesterday" or YYYY-MM-DD.
func parseDate(in string, clock clockwork.Clock) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "today":
		return clock.Now(), nil
	case "yesterday":
		return clock.Now().AddDate(0, 0, -1), nil
	}
	return tracker.ParseDay(strings.TrimSpace(in))
}

func daysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
