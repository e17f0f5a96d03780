package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var showAliases bool
	var familyFilter string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the instrument catalog",
		Long: `Print the instrument catalog the resolver matches against: the builtin
table merged with any user extensions from catalog.extra_path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.ensureCatalog()
			if err != nil {
				return err
			}

			entries := cat.Entries()
			if trimmed := strings.TrimSpace(familyFilter); trimmed != "" {
				filtered := entries[:0]
				for _, entry := range entries {
					if strings.EqualFold(entry.Family, trimmed) {
						filtered = append(filtered, entry)
					}
				}
				entries = filtered
			}

			if jsonOut {
				type entryView struct {
					Name    string   `json:"name"`
					Family  string   `json:"family"`
					Aliases []string `json:"aliases,omitempty"`
				}
				views := make([]entryView, 0, len(entries))
				for _, entry := range entries {
					view := entryView{Name: entry.Name, Family: entry.Family}
					if showAliases {
						view.Aliases = entry.Aliases
					}
					views = append(views, view)
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No catalog entries")
				return nil
			}

			headers := []string{"Instrument", "Family"}
			aligns := []columnAlignment{alignLeft, alignLeft}
			if showAliases {
				headers = append(headers, "Aliases")
				aligns = append(aligns, alignLeft)
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				row := []string{entry.Name, entry.Family}
				if showAliases {
					row = append(row, strings.Join(entry.Aliases, ", "))
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
			fmt.Fprintf(out, "%d instrument(s), families: %s\n",
				len(entries), strings.Join(cat.Families(), ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAliases, "aliases", false, "Include each instrument's aliases")
	cmd.Flags().StringVar(&familyFilter, "family", "", "Only show one instrument family")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
