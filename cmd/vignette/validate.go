package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/internal/cli"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/resolver"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [request.yaml...]",
	Short: "Check the catalog and requests for consistency",
	Long: `Loads the configured catalog and reports every invalid block or duplicate keyword.
Given request files, it also reports keywords the catalog cannot resolve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		problems, err := runValidate(cmd, args)
		if err != nil {
			return err
		}
		if problems > 0 {
			return fmt.Errorf("validation failed: %d problem(s)", problems)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (int, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return 0, err
	}
	out := cmd.OutOrStdout()

	cat, err := cli.LoadCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		var aggr *catalog.AggregateError
		if !errors.As(err, &aggr) {
			return 0, err
		}
		for _, e := range aggr.Errors {
			fmt.Fprintf(out, "  ✗ %v\n", e)
		}
		return len(aggr.Errors), nil
	}

	problems := 0
	for _, path := range args {
		req, err := vignette.LoadRequest(path)
		if err != nil {
			fmt.Fprintf(out, "  ✗ %v\n", err)
			problems++
			continue
		}
		script := resolver.Resolve(cat, req)
		for _, kw := range script.Missing {
			fmt.Fprintf(out, "  ✗ %s: unknown keyword %q\n", path, kw)
			problems++
		}
	}
	return problems, nil
}
