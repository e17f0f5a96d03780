package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"partsplit/internal/labeling"
	"partsplit/internal/naming"
	"partsplit/internal/pages"
	"partsplit/internal/segment"
	"partsplit/internal/services"
	"partsplit/internal/session"
)

const splitReadConcurrency = 4

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var baseFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "split FILE...",
		Short: "Segment page-text files into per-instrument splits",
		Long: `Read one or more page-text files (line-per-page, or a JSON array of
string-or-null fragments), resolve each page's label against the instrument
catalog, group contiguous pages into splits, and persist one edit session per
file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseFlag != "" && len(args) > 1 {
				return services.Wrap(services.ErrValidation, "cli", "split", "--base requires exactly one file", nil)
			}

			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}

			sessions := make([]*session.Session, len(args))
			group, groupCtx := errgroup.WithContext(cmd.Context())
			group.SetLimit(splitReadConcurrency)
			for i, path := range args {
				group.Go(func() error {
					if err := groupCtx.Err(); err != nil {
						return err
					}
					sess, err := buildSession(resolver, path, baseFlag)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					sessions[i] = sess
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			return ctx.withStore(func(store *session.Store) error {
				for _, sess := range sessions {
					if err := store.Create(cmd.Context(), sess); err != nil {
						return err
					}
				}
				if jsonOut {
					views := make([]sessionView, 0, len(sessions))
					for _, sess := range sessions {
						views = append(views, buildSessionView(sess))
					}
					return writeJSON(cmd, views)
				}
				for _, sess := range sessions {
					printSession(cmd, sess)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&baseFlag, "base", "", "Base name for derived filenames (single file only)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func buildSession(resolver *labeling.Resolver, path, baseOverride string) (*session.Session, error) {
	pageList, err := pages.ReadFile(path)
	if err != nil {
		return nil, err
	}

	labels := resolver.ResolveAll(pages.Texts(pageList))
	splits := segment.Segment(labels)

	baseName := baseOverride
	if baseName == "" {
		baseName = naming.BaseFromPath(path)
	}
	return session.New(baseName, path, len(pageList), splits)
}
