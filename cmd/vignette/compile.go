package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/internal/cli"
	"github.com/aretw0/vignette/internal/presentation/tui"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var compileCmd = &cobra.Command{
	Use:   "compile <request.yaml>",
	Short: "Resolve and lay out a request",
	Long: `Resolves the request's elements against the catalog, lays them out on the chosen
scene and writes the staged script. With --save the script is also stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().String("scene", "", "Scene to lay out on (overrides the request)")
	compileCmd.Flags().StringP("out", "o", "", "Write the staged script to this file instead of stdout")
	compileCmd.Flags().String("format", "yaml", "Output format: yaml, json or timeline")
	compileCmd.Flags().String("save", "", "Store the staged script under this id")
	compileCmd.Flags().BoolP("watch", "w", false, "Recompile whenever the catalog directory changes, re-reading the request")
}

func runCompile(cmd *cobra.Command, args []string) error {
	scene, _ := cmd.Flags().GetString("scene")
	load := func() (domain.Request, error) {
		req, err := vignette.LoadRequest(args[0])
		if err != nil {
			return req, err
		}
		if scene != "" {
			req.Scene = scene
		}
		return req, nil
	}
	req, err := load()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	saveID, _ := cmd.Flags().GetString("save")
	watch, _ := cmd.Flags().GetBool("watch")

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if watch {
		return watchCompile(cmd, env, load, format)
	}

	script, err := env.Director.Compile(cmd.Context(), req)
	if err != nil {
		return err
	}
	if saveID != "" {
		if err := env.Director.Save(cmd.Context(), saveID, script); err != nil {
			return err
		}
		cli.PrintSystemMessage(cmd.ErrOrStderr(), "Saved '%s' (%s store).", saveID, env.Config.Store.Backend)
		script.ID = saveID
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return writeScript(out, script, format)
}

func watchCompile(cmd *cobra.Command, env *cli.Environment, load func() (domain.Request, error), format string) error {
	if env.Config.Catalog == "" {
		return fmt.Errorf("--watch needs a catalog directory")
	}
	info, err := os.Stat(env.Config.Catalog)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("--watch needs a catalog directory, got %q", env.Config.Catalog)
	}

	signals := runner.NewSignalManager()
	defer signals.Stop()

	out := cmd.OutOrStdout()
	opts := []vignette.Option{
		vignette.WithLogger(env.Logger),
		vignette.WithScenery(env.Director.Scenery()),
	}
	return cli.WatchCompile(signals.Context(), env.Config.Catalog, load, env.Logger, opts, func(s *domain.StagedScript, err error) {
		if err != nil {
			cli.PrintSystemMessage(out, "Compile failed: %v", err)
			return
		}
		if err := writeScript(out, s, format); err != nil {
			cli.PrintSystemMessage(out, "Write failed: %v", err)
		}
		cli.PrintSystemMessage(out, "Waiting for changes...")
	})
}

func writeScript(w io.Writer, s *domain.StagedScript, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "timeline":
		tui.NewTimeline(w, termenv.Ascii).Script(s)
		return nil
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(s)
	}
	return fmt.Errorf("unknown format %q", format)
}
