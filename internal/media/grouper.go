package media

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DayLayout is the label format of date groups.
const DayLayout = "2006-01-02"

// untitledGroup collects items whose title is empty.
const untitledGroup = "#"

// GroupByDate partitions sorted items into runs that share a calendar day in
// loc. Items are not re-sorted, so a day only forms one group when the input
// is ordered by date. A nil loc means time.Local.
func GroupByDate(items []MediaItem, loc *time.Location) []MediaGroup {
	if loc == nil {
		loc = time.Local
	}
	return groupRuns(items, func(it MediaItem) string {
		return it.Date.In(loc).Format(DayLayout)
	})
}

// GroupByTitle partitions sorted items by the upper-cased first character of
// their title.
func GroupByTitle(items []MediaItem) []MediaGroup {
	return groupRuns(items, titleKey)
}

func titleKey(it MediaItem) string {
	r, size := utf8.DecodeRuneInString(it.Title)
	if size == 0 {
		return untitledGroup
	}
	return strings.ToUpper(string(r))
}

// groupRuns starts a new group each time the key changes between neighbours.
func groupRuns(items []MediaItem, key func(MediaItem) string) []MediaGroup {
	var groups []MediaGroup
	current := -1
	for _, it := range items {
		k := key(it)
		if current < 0 || groups[current].Title != k {
			groups = append(groups, MediaGroup{Title: k})
			current++
		}
		groups[current].Items = append(groups[current].Items, it)
	}
	if groups == nil {
		return []MediaGroup{}
	}
	return groups
}
