package main

import (
	"github.com/spf13/cobra"

	"partsplit/internal/services"
	"partsplit/internal/session"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rename SESSION INDEX NAME",
		Short: "Rename one split's instrument",
		Long: `Set the instrument name of the split at INDEX. A renamed split is
treated as operator-confirmed, so it no longer counts against review.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSplitIndex(args[1])
			if err != nil {
				return err
			}
			return applyEdit(ctx, cmd, args[0], jsonOut, func(sess *session.Session) error {
				return sess.Rename(index, args[2])
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newMergeUpCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "merge-up SESSION INDEX",
		Short: "Merge the split at INDEX into the one above it",
		Long: `Fold the split at INDEX into its predecessor. The predecessor's
instrument name and matched flag survive; the page ranges concatenate.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSplitIndex(args[1])
			if err != nil {
				return err
			}
			return applyEdit(ctx, cmd, args[0], jsonOut, func(sess *session.Session) error {
				return sess.MergeWithPrevious(index)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newMergeDownCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "merge-down SESSION INDEX",
		Short: "Merge the split below INDEX into it",
		Long: `Fold the next split into the one at INDEX. The next split's
instrument name and matched flag win; pages stay in document order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSplitIndex(args[1])
			if err != nil {
				return err
			}
			return applyEdit(ctx, cmd, args[0], jsonOut, func(sess *session.Session) error {
				return sess.MergeWithNext(index)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

// applyEdit resolves the session, runs the edit, persists the result, and
// reprints the session. A rejected edit surfaces before anything is written.
func applyEdit(ctx *commandContext, cmd *cobra.Command, sessionArg string, jsonOut bool, edit func(*session.Session) error) error {
	return ctx.withStore(func(store *session.Store) error {
		sess, err := resolveSession(cmd.Context(), store, sessionArg)
		if err != nil {
			return err
		}
		editCtx := services.WithSessionID(cmd.Context(), sess.ID)
		if err := edit(sess); err != nil {
			return err
		}
		if err := store.Update(editCtx, sess); err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(cmd, buildSessionView(sess))
		}
		printSession(cmd, sess)
		return nil
	})
}
