package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"media-catalog/internal/logging"
	"media-catalog/internal/media"
	"media-catalog/internal/metastore"
)

type commandContext struct {
	dir      string
	dbPath   string
	absolute bool
	verbose  bool
}

// openManager builds a manager for the configured directory. The returned
// function releases the metadata store, if one was opened.
func (c *commandContext) openManager(ctx context.Context) (*media.Manager, func(), error) {
	mode := media.Relative
	if c.absolute {
		mode = media.Absolute
	}

	var opts []media.Option
	closeFn := func() {}
	if c.dbPath != "" {
		store, err := metastore.Open(ctx, c.dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open metadata store: %w", err)
		}
		opts = append(opts, media.WithMetadataStore(store))
		closeFn = func() {
			if err := store.Close(); err != nil {
				logging.Warn("close metadata store: %v", err)
			}
		}
	}

	manager, err := media.New(c.dir, mode, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return manager, closeFn, nil
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "mediactl",
		Short:         "Inspect and edit a media catalog directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			if cc.verbose {
				logging.SetLevel(logging.LevelDebug)
			} else {
				logging.SetLevel(logging.LevelWarn)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cc.dir, "dir", "d", ".", "Media directory")
	flags.BoolVar(&cc.absolute, "absolute", false, "Use absolute paths as identifiers")
	flags.StringVar(&cc.dbPath, "db", "", "Metadata database file (titles and tags)")
	flags.BoolVarP(&cc.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newListCommand(cc))
	rootCmd.AddCommand(newShowCommand(cc))
	rootCmd.AddCommand(newTouchCommand(cc))
	rootCmd.AddCommand(newRemoveCommand(cc))
	rootCmd.AddCommand(newAddCommand(cc))

	return rootCmd
}
