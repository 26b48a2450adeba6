package media

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// CompareByDate orders by modification time, then by identifier. desc
// reverses the time comparison only; equal times always fall back to
// ascending identifier order.
func CompareByDate(a, b MediaItem, desc bool) int {
	return withTieBreak(a.Date.Compare(b.Date), desc, a.ID, b.ID)
}

// CompareByTitle orders by title group (the letter GroupByTitle files an
// item under), then by case-folded title, then by identifier, with the same
// direction rule as CompareByDate. Ordering by group first keeps every group
// contiguous even where folding changes the first letter ("ß" folds to "ss").
func CompareByTitle(a, b MediaItem, desc bool) int {
	fold := cases.Fold()
	return compareTitleKeys(
		titleKeyed{group: titleKey(a), key: fold.String(a.Title), item: a},
		titleKeyed{group: titleKey(b), key: fold.String(b.Title), item: b},
		desc,
	)
}

func compareTitleKeys(a, b titleKeyed, desc bool) int {
	primary := strings.Compare(a.group, b.group)
	if primary == 0 {
		primary = strings.Compare(a.key, b.key)
	}
	return withTieBreak(primary, desc, a.item.ID, b.item.ID)
}

func withTieBreak(primary int, desc bool, aID, bID string) int {
	if primary != 0 {
		if desc {
			return -primary
		}
		return primary
	}
	return strings.Compare(aID, bID)
}

// SortItems orders items in place for the given sort order. The sort is
// stable and total: no two distinct identifiers compare equal.
func SortItems(items []MediaItem, order SortOrder) {
	desc := order.Descending()

	if order.ByDate() {
		sort.SliceStable(items, func(i, j int) bool {
			return CompareByDate(items[i], items[j], desc) < 0
		})
		return
	}

	// Fold every title once instead of on each comparison.
	fold := cases.Fold()
	keyed := make([]titleKeyed, len(items))
	for i, it := range items {
		keyed[i] = titleKeyed{group: titleKey(it), key: fold.String(it.Title), item: it}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return compareTitleKeys(keyed[i], keyed[j], desc) < 0
	})
	for i := range keyed {
		items[i] = keyed[i].item
	}
}

type titleKeyed struct {
	group string
	key   string
	item  MediaItem
}
