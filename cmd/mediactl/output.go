package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disiqueira/gotree/v3"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return width
}

func renderTable(w io.Writer, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if width := terminalWidth(w); width > 0 {
		tw.SetStyle(table.StyleRounded)
		tw.SetAllowedRowLength(width)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	// Keep headers as given; both styles upper-case them by default.
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// relativeDate renders t as "3 days ago" followed by the calendar date.
func relativeDate(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now") + " (" + t.Format(media.DayLayout) + ")"
}

func renderGroupsTable(w io.Writer, groups []media.MediaGroup, now time.Time) string {
	var rows [][]string
	for _, g := range groups {
		for i, item := range g.Items {
			label := ""
			if i == 0 {
				label = g.Title
			}
			rows = append(rows, []string{
				label,
				item.Title,
				item.ID,
				item.Type().String(),
				relativeDate(item.Date, now),
				item.Tags,
			})
		}
	}
	return renderTable(w, []string{"Group", "Title", "ID", "Type", "Modified", "Tags"}, rows, nil)
}

func renderGroupsTree(root string, groups []media.MediaGroup) string {
	tree := gotree.New(root)
	for _, g := range groups {
		branch := tree.Add(g.Title)
		for _, item := range g.Items {
			label := item.ID
			if item.Title != "" && item.Title != baseName(item.ID) {
				label = item.Title + " (" + item.ID + ")"
			}
			branch.Add(label)
		}
	}
	return tree.Print()
}

func renderItem(w io.Writer, item media.MediaItem, size int64, now time.Time) string {
	rows := [][]string{
		{"ID", item.ID},
		{"Title", item.Title},
		{"Type", item.Type().String()},
		{"MIME type", mediatypes.MimeType(item.ID)},
		{"Modified", item.Date.Format(time.RFC3339) + ", " + humanize.RelTime(item.Date, now, "ago", "from now")},
		{"Size", humanize.IBytes(uint64(size))},
		{"Tags", item.Tags},
	}
	return renderTable(w, []string{"Field", "Value"}, rows, nil)
}

func baseName(id string) string {
	return filepath.Base(filepath.FromSlash(id))
}

type itemJSON struct {
	Title string               `json:"title"`
	ID    string               `json:"id"`
	Date  time.Time            `json:"date"`
	Tags  string               `json:"tags,omitempty"`
	Type  mediatypes.MediaType `json:"type"`
}

type groupJSON struct {
	Title string     `json:"title"`
	Items []itemJSON `json:"items"`
}

func toItemJSON(item media.MediaItem) itemJSON {
	return itemJSON{Title: item.Title, ID: item.ID, Date: item.Date, Tags: item.Tags, Type: item.Type()}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
