package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"media-catalog/internal/media"
	"media-catalog/internal/mediatypes"
)

func newListCommand(cc *commandContext) *cobra.Command {
	var typesFlag []string
	var tagsFlag []string
	var sortFlag string
	var treeFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media items grouped by day or leading letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQualifier(typesFlag, tagsFlag, sortFlag)
			if err != nil {
				return err
			}

			manager, closeFn, err := cc.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			groups, err := manager.ListMediaItems(cmd.Context(), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonFlag:
				payload := make([]groupJSON, len(groups))
				for i, g := range groups {
					items := make([]itemJSON, len(g.Items))
					for j, item := range g.Items {
						items[j] = toItemJSON(item)
					}
					payload[i] = groupJSON{Title: g.Title, Items: items}
				}
				return writeJSON(cmd, payload)
			case treeFlag:
				fmt.Fprint(out, renderGroupsTree(manager.Root(), groups))
			case len(groups) == 0:
				fmt.Fprintln(out, "No media items found")
			default:
				fmt.Fprintln(out, renderGroupsTable(out, groups, time.Now()))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&typesFlag, "types", "t", nil, "Media types to include (image, mp4, flv, ogv); default all")
	cmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Only items carrying any of these tags (requires --db)")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", media.TitleAsc.String(), "Sort order: title-asc, title-desc, date-asc, date-desc")
	cmd.Flags().BoolVar(&treeFlag, "tree", false, "Render groups as a tree")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output JSON")

	return cmd
}

func buildQualifier(types, tags []string, sortOrder string) (media.Qualifier, error) {
	q := media.NewQualifier()

	var selected []mediatypes.MediaType
	for _, name := range types {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := mediatypes.ParseMediaType(name)
		if err != nil {
			return q, err
		}
		selected = append(selected, t)
	}
	if len(selected) == 0 {
		selected = mediatypes.Listable
	}
	q = q.WithTypes(selected...)

	if len(tags) > 0 {
		q = q.WithTags(tags...)
	}

	order, err := media.ParseSortOrder(sortOrder)
	if err != nil {
		return q, err
	}
	return q.WithSortOrder(order), nil
}
