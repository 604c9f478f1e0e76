package live

import "sort"

// IndexPath addresses a row within a snapshot.
type IndexPath struct {
	Section int
	Row     int
}

// Diff describes how to turn one snapshot into the next. Deleted paths and
// sections index the old snapshot; inserted and updated ones index the new.
type Diff struct {
	InsertedSections []int
	DeletedSections  []int
	InsertedRows     []IndexPath
	DeletedRows      []IndexPath
	UpdatedRows      []IndexPath
}

// Empty reports whether the diff carries no changes.
func (d Diff) Empty() bool {
	return len(d.InsertedSections) == 0 && len(d.DeletedSections) == 0 &&
		len(d.InsertedRows) == 0 && len(d.DeletedRows) == 0 && len(d.UpdatedRows) == 0
}

type located struct {
	path IndexPath
	item Item
}

// computeDiff compares two snapshots. Sections are identified by name and
// rows by tracker id. Rows of inserted or deleted sections are covered by
// the section change. A row that changed section or name is reported as a
// delete plus an insert; any other content change is an update.
func computeDiff(old, cur Snapshot) Diff {
	var d Diff

	oldSections := make(map[string]int, len(old.Sections))
	for i, sec := range old.Sections {
		oldSections[sec.Name] = i
	}
	curSections := make(map[string]int, len(cur.Sections))
	for i, sec := range cur.Sections {
		curSections[sec.Name] = i
	}

	for i, sec := range old.Sections {
		if _, ok := curSections[sec.Name]; !ok {
			d.DeletedSections = append(d.DeletedSections, i)
		}
	}
	for i, sec := range cur.Sections {
		if _, ok := oldSections[sec.Name]; !ok {
			d.InsertedSections = append(d.InsertedSections, i)
		}
	}

	oldRows := keptRows(old, curSections)
	curRows := keptRows(cur, oldSections)

	for id, o := range oldRows {
		if _, ok := curRows[id]; !ok {
			d.DeletedRows = append(d.DeletedRows, o.path)
		}
	}
	for id, c := range curRows {
		o, ok := oldRows[id]
		switch {
		case !ok:
			d.InsertedRows = append(d.InsertedRows, c.path)
		case o.item.Category != c.item.Category || o.item.Tracker.Name != c.item.Tracker.Name:
			d.DeletedRows = append(d.DeletedRows, o.path)
			d.InsertedRows = append(d.InsertedRows, c.path)
		case !o.item.equal(c.item):
			d.UpdatedRows = append(d.UpdatedRows, c.path)
		}
	}

	sortPaths(d.InsertedRows)
	sortPaths(d.DeletedRows)
	sortPaths(d.UpdatedRows)
	return d
}

// keptRows indexes the rows of s whose section also exists in other.
func keptRows(s Snapshot, other map[string]int) map[string]located {
	rows := make(map[string]located)
	for si, sec := range s.Sections {
		if _, ok := other[sec.Name]; !ok {
			continue
		}
		for ri, it := range sec.Items {
			rows[it.Tracker.ID.String()] = located{path: IndexPath{Section: si, Row: ri}, item: it}
		}
	}
	return rows
}

func sortPaths(p []IndexPath) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Section != p[j].Section {
			return p[i].Section < p[j].Section
		}
		return p[i].Row < p[j].Row
	})
}
