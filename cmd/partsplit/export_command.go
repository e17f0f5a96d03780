package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"partsplit/internal/config"
	"partsplit/internal/plan"
	"partsplit/internal/services"
	"partsplit/internal/session"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outFlag string
	var force bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "export SESSION",
		Short: "Write a session's assembly plan and mark it exported",
		Long: `Build the assembly plan for a session's current splits and write it as
JSON to the configured export directory (or --out). The session is marked
exported; exporting it again requires --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if sess.Status == session.StatusExported && !force {
					return services.Wrap(services.ErrValidation, "cli", "export",
						fmt.Sprintf("session %s is already exported (use --force to re-export)", shortID(sess.ID)), nil)
				}

				built, err := plan.Build(sess)
				if err != nil {
					return err
				}

				outPath := outFlag
				if outPath == "" {
					outPath = filepath.Join(cfg.Paths.ExportDir, sess.BaseName+"-plan.json")
				} else {
					outPath, err = config.ExpandPath(outPath)
					if err != nil {
						return err
					}
				}
				if err := built.WriteFile(outPath); err != nil {
					return services.Wrap(services.ErrConfiguration, "cli", "export", "write plan", err)
				}

				exportedAt := time.Now().UTC()
				if err := store.MarkExported(cmd.Context(), sess.ID, exportedAt); err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, map[string]any{
						"session_id":  sess.ID,
						"plan_path":   outPath,
						"entries":     len(built.Entries),
						"exported_at": exportedAt,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(built.Entries), outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "Plan output path (defaults to export_dir)")
	cmd.Flags().BoolVar(&force, "force", false, "Allow re-exporting an already-exported session")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
