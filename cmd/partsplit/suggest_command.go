package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"partsplit/internal/services/advisor"
	"partsplit/internal/session"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var apply bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "suggest SESSION",
		Short: "Ask the label advisor about unmatched splits",
		Long: `Send each unmatched split's label text to the configured LLM advisor
and report which catalog instrument it suggests. With --apply, suggestions at
or above llm.min_confidence are applied as renames.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			adv, err := advisor.New(cfg, cat, logger)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *session.Store) error {
				sess, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}

				type suggestionView struct {
					Index      int     `json:"index"`
					Fragment   string  `json:"fragment"`
					Instrument string  `json:"instrument,omitempty"`
					Confidence float64 `json:"confidence,omitempty"`
					Applied    bool    `json:"applied"`
				}

				var results []suggestionView
				applied := 0
				for i, split := range sess.Splits() {
					if split.Matched {
						continue
					}
					view := suggestionView{Index: i, Fragment: split.Instrument}
					if split.Instrument != "" {
						suggestion, err := adv.SuggestInstrument(cmd.Context(), split.Instrument)
						if err != nil {
							return err
						}
						if suggestion != nil {
							view.Instrument = suggestion.Instrument
							view.Confidence = suggestion.Confidence
							if apply && suggestion.Confidence >= adv.MinConfidence {
								if err := sess.Rename(i, suggestion.Instrument); err != nil {
									return err
								}
								view.Applied = true
								applied++
							}
						}
					}
					results = append(results, view)
				}

				if applied > 0 {
					if err := store.Update(cmd.Context(), sess); err != nil {
						return err
					}
				}

				if jsonOut {
					return writeJSON(cmd, results)
				}

				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(out, "All splits are matched; nothing to suggest")
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					suggestion := "(no suggestion)"
					confidence := "-"
					if r.Instrument != "" {
						suggestion = r.Instrument
						confidence = strconv.FormatFloat(r.Confidence, 'f', 2, 64)
					}
					rows = append(rows, []string{
						strconv.Itoa(r.Index),
						r.Fragment,
						suggestion,
						confidence,
						yesNo(r.Applied),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"#", "Fragment", "Suggestion", "Confidence", "Applied"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
				if applied > 0 {
					fmt.Fprintf(out, "Applied %d suggestion(s)\n", applied)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Rename splits whose suggestion meets llm.min_confidence")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
