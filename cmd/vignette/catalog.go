package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/vignette/internal/cli"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the catalog's action blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}

		blocks := cat.Blocks()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(blocks)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCATEGORY\tALIASES\tENTER\tGROUP\tEFFECTS")
		for _, b := range blocks {
			group := "-"
			if b.SupportsGroup {
				group = fmt.Sprintf("≤%d", b.Limit())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Category, dashJoin(b.Aliases), dash(string(b.EnterStyle)), group, dashJoin(b.Effects))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Print blocks as JSON")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dashJoin(items []string) string {
	return dash(strings.Join(items, ","))
}
