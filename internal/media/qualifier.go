package media

import (
	"fmt"
	"sort"
	"strings"

	"media-catalog/internal/mediatypes"
)

// SortOrder is the requested listing order. It also picks the grouper:
// date orders group by day, title orders group by leading letter.
type SortOrder int

const (
	// TitleAsc is the zero value and the default order.
	TitleAsc SortOrder = iota
	TitleDesc
	DateAsc
	DateDesc
)

var sortOrderNames = map[SortOrder]string{
	TitleAsc:  "title-asc",
	TitleDesc: "title-desc",
	DateAsc:   "date-asc",
	DateDesc:  "date-desc",
}

// String returns the wire name of the order.
func (o SortOrder) String() string {
	if name, ok := sortOrderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(o))
}

// ByDate reports whether the order sorts on the modification date.
func (o SortOrder) ByDate() bool {
	return o == DateAsc || o == DateDesc
}

// Descending reports whether the primary key is reversed.
func (o SortOrder) Descending() bool {
	return o == DateDesc || o == TitleDesc
}

// ParseSortOrder parses "date-desc", "date_desc", "DATE_DESC" and the like.
func ParseSortOrder(s string) (SortOrder, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for o, name := range sortOrderNames {
		if name == norm {
			return o, nil
		}
	}
	return TitleAsc, fmt.Errorf("unknown sort order %q", s)
}

// Qualifier selects and orders a listing. It is an immutable value: the
// With* methods return modified copies and never touch the receiver.
//
//	q := media.NewQualifier().
//		WithTypes(mediatypes.Image, mediatypes.MP4Video).
//		WithSortOrder(media.DateDesc)
type Qualifier struct {
	types     []mediatypes.MediaType
	tags      []string
	sortOrder SortOrder
}

// NewQualifier returns a qualifier with no types (matches nothing), no tags
// and TitleAsc order.
func NewQualifier() Qualifier {
	return Qualifier{}
}

// WithTypes replaces the type set. Duplicates are dropped; order is
// irrelevant.
func (q Qualifier) WithTypes(types ...mediatypes.MediaType) Qualifier {
	seen := make(map[mediatypes.MediaType]struct{}, len(types))
	set := make([]mediatypes.MediaType, 0, len(types))
	for _, t := range types {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	q.types = set
	return q
}

// WithTags replaces the tag set. Tags are trimmed and lower-cased.
func (q Qualifier) WithTags(tags ...string) Qualifier {
	q.tags = normalizeTags(tags)
	return q
}

// WithSortOrder replaces the sort order.
func (q Qualifier) WithSortOrder(order SortOrder) Qualifier {
	q.sortOrder = order
	return q
}

// Types returns a copy of the type set in ascending enum order.
func (q Qualifier) Types() []mediatypes.MediaType {
	return append([]mediatypes.MediaType(nil), q.types...)
}

// Tags returns a copy of the normalized tag set.
func (q Qualifier) Tags() []string {
	return append([]string(nil), q.tags...)
}

// SortOrder returns the requested order.
func (q Qualifier) SortOrder() SortOrder {
	return q.sortOrder
}

// HasType reports whether t is selected.
func (q Qualifier) HasType(t mediatypes.MediaType) bool {
	for _, qt := range q.types {
		if qt == t {
			return true
		}
	}
	return false
}

func (q Qualifier) String() string {
	names := make([]string, len(q.types))
	for i, t := range q.types {
		names[i] = t.String()
	}
	return fmt.Sprintf("[%s]:%s:[%s]", strings.Join(names, ","), q.sortOrder, strings.Join(q.tags, ","))
}
