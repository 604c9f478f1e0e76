package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/habitr/internal/live"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/tracker"
)

type AddCmd struct {
	Name     string `arg:"" help:"Tracker name."`
	Category string `short:"c" help:"Category name (default: the default_category setting)."`
	Days     string `short:"d" help:"Schedule, e.g. mon,wed,fri or daily." default:"daily"`
	Emoji    string `short:"e" help:"Single emoji glyph."`
	Color    string `help:"Color as #RRGGBB."`
}

func (c *AddCmd) Run(ctx *Context) error {
	schedule, err := tracker.ParseSchedule(c.Days)
	if err != nil {
		return err
	}
	emoji := c.Emoji
	if emoji == "" {
		emoji = tracker.Emojis[0]
	}
	hex := c.Color
	if hex == "" {
		hex = tracker.Palette[0]
	}
	color, err := tracker.ParseColor(hex)
	if err != nil {
		return err
	}
	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = ctx.defaultCategory()
	}

	t := tracker.New(strings.TrimSpace(c.Name), emoji, color, schedule)
	if err := t.Validate(); err != nil {
		return err
	}
	if err := ctx.NewEngine().AddTracker(t, category); err != nil {
		return err
	}
	ctx.printf("Added tracker %q (%s)\n", t.Name, t.ID)
	return nil
}

type EditCmd struct {
	Tracker  string  `arg:"" help:"Tracker id or name."`
	Name     *string `help:"New name."`
	Category *string `short:"c" help:"New category."`
	Days     *string `short:"d" help:"New schedule."`
	Emoji    *string `short:"e" help:"New emoji."`
	Color    *string `help:"New color as #RRGGBB."`
}

func (c *EditCmd) Run(ctx *Context) error {
	t, category, err := ctx.resolveTracker(c.Tracker)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		t.Name = strings.TrimSpace(*c.Name)
		updated = true
	}
	if c.Category != nil {
		category = strings.TrimSpace(*c.Category)
		updated = true
	}
	if c.Days != nil {
		if t.Schedule, err = tracker.ParseSchedule(*c.Days); err != nil {
			return err
		}
		updated = true
	}
	if c.Emoji != nil {
		t.Emoji = *c.Emoji
		updated = true
	}
	if c.Color != nil {
		if t.Color, err = tracker.ParseColor(*c.Color); err != nil {
			return err
		}
		updated = true
	}
	if !updated {
		ctx.printf("No changes specified.\n")
		return nil
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := ctx.NewEngine().UpdateTracker(t.ID, t.Name, category, t.Schedule, t.Color, t.Emoji); err != nil {
		return err
	}
	ctx.printf("Updated tracker %q\n", t.Name)
	return nil
}

type DeleteCmd struct {
	Tracker string `arg:"" help:"Tracker id or name."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	t, _, err := ctx.resolveTracker(c.Tracker)
	if err != nil {
		return err
	}
	if err := ctx.NewEngine().DeleteTracker(t.ID); err != nil {
		return err
	}
	ctx.printf("Deleted tracker %q\n", t.Name)
	return nil
}

type ToggleCmd struct {
	Tracker string `arg:"" help:"Tracker id or name."`
	Date    string `help:"Day: today, yesterday or YYYY-MM-DD." default:"today"`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	t, _, err := ctx.resolveTracker(c.Tracker)
	if err != nil {
		return err
	}
	date, err := parseDate(c.Date, ctx.clock())
	if err != nil {
		return err
	}

	e := ctx.NewEngine()
	if err := e.ToggleCompletion(t.ID, date); err != nil {
		if errors.Is(err, live.ErrFutureDay) {
			return fmt.Errorf("%s is in the future", tracker.DayKey(date))
		}
		return err
	}
	if e.IsCompleted(t.ID, date) {
		ctx.printf("Marked %q for %s\n", t.Name, tracker.DayKey(date))
	} else {
		ctx.printf("Unmarked %q for %s\n", t.Name, tracker.DayKey(date))
	}
	return nil
}

type ListCmd struct {
	Date   string `help:"Day: today, yesterday or YYYY-MM-DD." default:"today"`
	Search string `short:"s" help:"Only trackers whose name contains this text."`
	Status string `help:"Filter: all, today, completed or not-completed (default: the default_filter setting)."`
}

func (c *ListCmd) Run(ctx *Context) error {
	date, err := parseDate(c.Date, ctx.clock())
	if err != nil {
		return err
	}
	opts := []live.Option{live.WithDate(date)}
	if c.Status != "" {
		status, err := query.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		opts = append(opts, live.WithStatus(status))
	}

	e := ctx.NewEngine(opts...)
	if c.Search != "" {
		e.UpdateSearchText(c.Search)
	}

	ctx.printf("%s · %s\n", e.EffectiveDate().Format("Mon, Jan 2 2006"), e.State().Status.Label())
	if e.NumberOfSections() == 0 {
		ctx.printf("No trackers.\n")
		return nil
	}
	for s := 0; s < e.NumberOfSections(); s++ {
		ctx.printf("\n%s\n", e.TitleForSection(s))
		for r := 0; r < e.NumberOfItems(s); r++ {
			item, _ := e.ItemAt(s, r)
			check := "[ ]"
			if item.Completed {
				check = "[x]"
			}
			ctx.printf("  %s %s %s  (%s, %s)\n", check, item.Tracker.Emoji, item.Tracker.Name,
				daysLabel(item.CompletedDays), item.Tracker.Schedule)
		}
	}
	return nil
}
