package media

import (
	"reflect"
	"testing"
	"time"
)

var (
	jan1 = time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	jan2 = time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC)
)

func ids(items []MediaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSortItems(t *testing.T) {
	items := []MediaItem{
		{Title: "beta", ID: "p/b.png", Date: jan2},
		{Title: "Alpha", ID: "p/a.png", Date: jan2},
		{Title: "gamma", ID: "p/c.mp4", Date: jan1},
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{TitleAsc, []string{"p/a.png", "p/b.png", "p/c.mp4"}},
		{TitleDesc, []string{"p/c.mp4", "p/b.png", "p/a.png"}},
		{DateAsc, []string{"p/c.mp4", "p/a.png", "p/b.png"}},
		// Equal dates keep ascending identifier order in both directions.
		{DateDesc, []string{"p/a.png", "p/b.png", "p/c.mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			got := append([]MediaItem(nil), items...)
			SortItems(got, tt.order)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("SortItems(%s) = %v, want %v", tt.order, ids(got), tt.want)
			}
		})
	}
}

func TestSortItemsTitleTieBreak(t *testing.T) {
	items := []MediaItem{
		{Title: "sunset", ID: "p/2.jpg"},
		{Title: "SUNSET", ID: "p/1.jpg"},
		{Title: "Sunset", ID: "p/3.jpg"},
	}

	for _, order := range []SortOrder{TitleAsc, TitleDesc} {
		t.Run(order.String(), func(t *testing.T) {
			got := append([]MediaItem(nil), items...)
			SortItems(got, order)
			want := []string{"p/1.jpg", "p/2.jpg", "p/3.jpg"}
			if !reflect.DeepEqual(ids(got), want) {
				t.Errorf("SortItems(%s) = %v, want %v", order, ids(got), want)
			}
		})
	}
}

func TestCompareByTitleFoldsCase(t *testing.T) {
	a := MediaItem{Title: "apple", ID: "p/z.jpg"}
	b := MediaItem{Title: "Zebra", ID: "p/a.jpg"}

	if c := CompareByTitle(a, b, false); c >= 0 {
		t.Errorf("CompareByTitle(apple, Zebra) = %d, want < 0", c)
	}
	if c := CompareByTitle(a, b, true); c <= 0 {
		t.Errorf("CompareByTitle(apple, Zebra, desc) = %d, want > 0", c)
	}

	if c := CompareByTitle(MediaItem{Title: "ÉTÉ", ID: "1"}, MediaItem{Title: "été", ID: "1"}, false); c != 0 {
		t.Errorf("CompareByTitle(ÉTÉ, été) = %d, want 0", c)
	}
}

func TestCompareByTitleGroupsFirst(t *testing.T) {
	ss := MediaItem{Title: "ßb", ID: "p/1.jpg"}
	su := MediaItem{Title: "su", ID: "p/2.jpg"}

	if c := CompareByTitle(su, ss, false); c >= 0 {
		t.Errorf("CompareByTitle(su, ßb) = %d, want < 0", c)
	}
	if c := CompareByTitle(su, ss, true); c <= 0 {
		t.Errorf("CompareByTitle(su, ßb, desc) = %d, want > 0", c)
	}
}

func TestCompareByDate(t *testing.T) {
	early := MediaItem{ID: "p/b.jpg", Date: jan1}
	late := MediaItem{ID: "p/a.jpg", Date: jan2}

	if c := CompareByDate(early, late, false); c >= 0 {
		t.Errorf("ascending = %d, want < 0", c)
	}
	if c := CompareByDate(early, late, true); c <= 0 {
		t.Errorf("descending = %d, want > 0", c)
	}

	same := MediaItem{ID: "p/c.jpg", Date: jan1}
	for _, desc := range []bool{false, true} {
		if c := CompareByDate(early, same, desc); c >= 0 {
			t.Errorf("tie with desc=%v = %d, want < 0", desc, c)
		}
	}
}

func TestSortItemsIsTotal(t *testing.T) {
	items := []MediaItem{
		{Title: "x", ID: "p/3.jpg", Date: jan1},
		{Title: "x", ID: "p/1.jpg", Date: jan1},
		{Title: "x", ID: "p/2.jpg", Date: jan1},
	}
	for _, order := range []SortOrder{TitleAsc, TitleDesc, DateAsc, DateDesc} {
		a := append([]MediaItem(nil), items...)
		b := []MediaItem{items[2], items[0], items[1]}
		SortItems(a, order)
		SortItems(b, order)
		if !reflect.DeepEqual(ids(a), ids(b)) {
			t.Errorf("%s: order depends on input: %v vs %v", order, ids(a), ids(b))
		}
	}
}
