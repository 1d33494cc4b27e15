package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nfoforge/internal/tokens"
)

type tokenRow struct {
	Name        string `json:"name"`
	Token       string `json:"token"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func newTokensCommand() *cobra.Command {
	var category string
	var jsonOutput bool
	var forceTable bool

	cmd := &cobra.Command{
		Use:         "tokens",
		Short:       "List the token catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []tokens.Token
			switch strings.ToLower(strings.TrimSpace(category)) {
			case "", "all":
				list = tokens.All()
			case "file":
				list = tokens.All(tokens.FileToken)
			case "nfo":
				list = tokens.All(tokens.NfoToken)
			default:
				return fmt.Errorf("unknown category %q (use file, nfo or all)", category)
			}

			rows := make([]tokenRow, 0, len(list))
			for _, t := range list {
				rows = append(rows, tokenRow{
					Name:        t.Name,
					Token:       t.Bracketed(),
					Category:    t.Category.String(),
					Description: t.Description,
				})
			}

			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if forceTable || isTerminal(out) {
				cells := make([][]string, 0, len(rows))
				for _, r := range rows {
					cells = append(cells, []string{r.Token, r.Category, r.Description})
				}
				fmt.Fprintln(out, renderTable([]string{"Token", "Category", "Description"}, cells, nil))
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.Token, r.Category, r.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "Token category to list: file, nfo or all")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	cmd.Flags().BoolVar(&forceTable, "table", false, "Draw a table even when stdout is not a terminal")
	return cmd
}
