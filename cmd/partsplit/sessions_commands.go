package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"partsplit/internal/services"
	"partsplit/internal/session"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and manage edit sessions",
		RunE:  newSessionsListRun(ctx, nil),
	}

	var statusFilter string
	var jsonOut bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List edit sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []session.Status
			if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
				status, ok := session.ParseStatus(trimmed)
				if !ok {
					return services.Wrap(services.ErrValidation, "cli", "sessions",
						fmt.Sprintf("unknown status %q", trimmed), nil)
				}
				statuses = append(statuses, status)
			}
			run := newSessionsListRun(ctx, statuses)
			if jsonOut {
				run = newSessionsListJSONRun(ctx, statuses)
			}
			return run(cmd, args)
		},
	}
	listCmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (open, exported)")
	listCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")

	deleteCmd := &cobra.Command{
		Use:   "delete SESSION",
		Short: "Delete one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				removed, err := store.Delete(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				if !removed {
					return services.Wrap(services.ErrNotFound, "cli", "sessions",
						fmt.Sprintf("no session %s", sess.ID), nil)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", sess.ID)
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all exported sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				cleared, err := store.ClearExported(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d exported session(s)\n", cleared)
				return nil
			})
		},
	}

	sessionsCmd.AddCommand(listCmd)
	sessionsCmd.AddCommand(deleteCmd)
	sessionsCmd.AddCommand(clearCmd)
	return sessionsCmd
}

func newSessionsListRun(ctx *commandContext, statuses []session.Status) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return ctx.withStore(func(store *session.Store) error {
			sessions, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
				return nil
			}
			rows := make([][]string, 0, len(sessions))
			for _, sess := range sessions {
				rows = append(rows, []string{
					shortID(sess.ID),
					sess.BaseName,
					string(sess.Status),
					fmt.Sprintf("%d", sess.PageCount),
					fmt.Sprintf("%d", sess.SplitCount()),
					yesNo(sess.NeedsReview),
					sess.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Base", "Status", "Pages", "Splits", "Review", "Created"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft}))
			return nil
		})
	}
}

func newSessionsListJSONRun(ctx *commandContext, statuses []session.Status) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return ctx.withStore(func(store *session.Store) error {
			sessions, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			views := make([]sessionView, 0, len(sessions))
			for _, sess := range sessions {
				views = append(views, buildSessionView(sess))
			}
			return writeJSON(cmd, views)
		})
	}
}
