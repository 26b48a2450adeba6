package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"media-catalog/internal/media"
)

func newShowCommand(cc *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details of a media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeFn, err := cc.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			f, item, err := manager.OpenContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			info, err := f.Stat()
			_ = f.Close()
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, toItemJSON(item))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderItem(out, item, info.Size(), time.Now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output JSON")
	return cmd
}

// parseDate accepts RFC 3339, a bare day in the local zone, or "now".
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(media.DayLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want RFC 3339, YYYY-MM-DD or now", s)
}

func newTouchCommand(cc *commandContext) *cobra.Command {
	var dateFlag string
	var titleFlag string
	var tagsFlag string

	cmd := &cobra.Command{
		Use:   "touch <id>",
		Short: "Set the date of a media item",
		Long:  "Set the modification date of a media item. With --db, --title and --tags update the stored metadata as well.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			manager, closeFn, err := cc.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			item, err := manager.GetMediaItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			item.Date = date
			if cmd.Flags().Changed("title") {
				item.Title = titleFlag
			}
			if cmd.Flags().Changed("tags") {
				item.Tags = tagsFlag
			}

			if err := manager.UpdateMediaItem(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", item.ID, date.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "now", "New date (RFC 3339, YYYY-MM-DD or now)")
	cmd.Flags().StringVar(&titleFlag, "title", "", "New title")
	cmd.Flags().StringVar(&tagsFlag, "tags", "", "New comma separated tags")
	return cmd
}

func newRemoveCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove media items",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeFn, err := cc.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			for _, id := range args {
				if err := manager.DeleteMediaItem(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			}
			return nil
		},
	}
}

func newAddCommand(cc *commandContext) *cobra.Command {
	var nameFlag string
	var titleFlag string
	var tagsFlag string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Copy a file into the media directory",
		Long:  "Copy a file into the media directory, keeping its modification date. Existing items are never overwritten.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			info, err := src.Stat()
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("%s is not a regular file", args[0])
			}

			name := nameFlag
			if name == "" {
				name = filepath.Base(args[0])
			}
			title := titleFlag
			if title == "" {
				title = name
			}

			manager, closeFn, err := cc.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			item := &media.MediaItem{ID: name, Title: title, Tags: tagsFlag, Date: info.ModTime()}
			if err := manager.CreateMediaItem(cmd.Context(), item, src); err != nil {
				if errors.Is(err, os.ErrExist) {
					return fmt.Errorf("%s already exists in %s", name, manager.Root())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "File name inside the media directory")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Title (stored with --db)")
	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma separated tags (stored with --db)")
	return cmd
}
