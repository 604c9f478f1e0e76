package live

import (
	"sort"
	"time"

	"github.com/sadopc/habitr/internal/tracker"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is one visible tracker row.
type Item struct {
	Tracker  tracker.Tracker
	Category string
	// Completed is true when the tracker has a record on the snapshot date.
	Completed     bool
	CompletedDays int
}

func (i Item) equal(o Item) bool {
	return i.Tracker.Equal(o.Tracker) &&
		i.Category == o.Category &&
		i.Completed == o.Completed &&
		i.CompletedDays == o.CompletedDays
}

// Section groups the items of one category.
type Section struct {
	Name  string
	Items []Item
}

// Snapshot is the grouped result of one query run.
type Snapshot struct {
	Date     time.Time
	Sections []Section
}

// Len returns the number of rows across all sections.
func (s Snapshot) Len() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Items)
	}
	return n
}

// Find returns the index path of the tracker with id, if visible.
func (s Snapshot) Find(id string) (IndexPath, bool) {
	for si, sec := range s.Sections {
		for ri, it := range sec.Items {
			if it.Tracker.ID.String() == id {
				return IndexPath{Section: si, Row: ri}, true
			}
		}
	}
	return IndexPath{}, false
}

// group sorts items into sections by category name, then by tracker name.
// Names compare case-insensitively by collation; ties fall back to raw
// bytes and then to the tracker id so the order is total.
func group(items []Item) []Section {
	col := collate.New(language.Und, collate.IgnoreCase)
	less := func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := less(a.Category, b.Category); c != 0 {
			return c < 0
		}
		if c := less(a.Tracker.Name, b.Tracker.Name); c != 0 {
			return c < 0
		}
		return a.Tracker.ID.String() < b.Tracker.ID.String()
	})

	var sections []Section
	for _, it := range items {
		if n := len(sections); n > 0 && sections[n-1].Name == it.Category {
			sections[n-1].Items = append(sections[n-1].Items, it)
			continue
		}
		sections = append(sections, Section{Name: it.Category, Items: []Item{it}})
	}
	return sections
}
