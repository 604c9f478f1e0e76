package cli

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sadopc/habitr/internal/query"
	"github.com/sadopc/habitr/internal/stats"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tracker"
)

var errEmptyCategory = errors.New("category name is empty")

type CategoriesCmd struct {
	List CategoriesListCmd `cmd:"" help:"List categories." default:"1"`
	Add  CategoriesAddCmd  `cmd:"" help:"Create a category."`
}

type CategoriesAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoriesAddCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errEmptyCategory
	}
	if _, err := ctx.Store.EnsureCategory(name); err != nil {
		return err
	}
	ctx.printf("Category %q ready.\n", name)
	return nil
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx *Context) error {
	categories, err := ctx.Store.ListCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		ctx.printf("No categories found.\n")
		return nil
	}
	for _, cat := range categories {
		n, err := ctx.Store.CountTrackers(store.TrackerInCategory(cat.Name))
		if err != nil {
			return err
		}
		name := cat.Name
		if name == "" {
			name = "(none)"
		}
		noun := "trackers"
		if n == 1 {
			noun = "tracker"
		}
		ctx.printf("%-24s %s %s\n", name, humanize.Comma(int64(n)), noun)
	}
	return nil
}

type StatsCmd struct {
	Date string `help:"Last day of the 7-day window." default:"today"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	end, err := parseDate(c.Date, ctx.clock())
	if err != nil {
		return err
	}
	sum, err := stats.Compute(ctx.Store, end)
	if err != nil {
		return err
	}

	ctx.printf("Trackers completed: %s\n", sum.TotalLabel())
	ctx.printf("Trackers:           %s\n", humanize.Comma(int64(sum.Trackers)))
	ctx.printf("Categories:         %s\n", humanize.Comma(int64(sum.Categories)))
	ctx.printf("Average per day:    %s\n", sum.AverageLabel())
	ctx.printf("Best day:           %s\n\n", sum.BestDayLabel())
	for _, d := range sum.Days {
		label := d.Day
		if t, err := tracker.ParseDay(d.Day); err == nil {
			label = t.Format("Mon 02")
		}
		ctx.printf("  %s %s %d\n", label, strings.Repeat("█", d.Count), d.Count)
	}
	return nil
}

type SettingsCmd struct {
	DefaultCategory *string `help:"Category used when none is given."`
	DefaultFilter   *string `help:"Filter applied at startup: all, today, completed or not-completed."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	updated := false
	if c.DefaultCategory != nil {
		if err := ctx.Store.SetSetting(store.SettingDefaultCategory, strings.TrimSpace(*c.DefaultCategory)); err != nil {
			return err
		}
		updated = true
	}
	if c.DefaultFilter != nil {
		st, err := query.ParseStatus(*c.DefaultFilter)
		if err != nil {
			return err
		}
		if err := ctx.Store.SetSetting(store.SettingDefaultFilter, st.String()); err != nil {
			return err
		}
		updated = true
	}
	if updated {
		ctx.printf("Settings updated.\n")
		return nil
	}

	filter := ctx.Store.SettingOr(store.SettingDefaultFilter, "")
	label := filter
	if st, err := query.ParseStatus(filter); err == nil {
		label = st.Label()
	}
	ctx.printf("Default category: %s\n", fallback(ctx.defaultCategory(), "(none)"))
	ctx.printf("Default filter:   %s\n", fallback(label, "(none)"))
	return nil
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
