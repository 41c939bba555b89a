package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/internal/cli"
	"github.com/aretw0/vignette/internal/presentation/tui"
	"github.com/aretw0/vignette/pkg/adapters/rehearsal"
	"github.com/aretw0/vignette/pkg/adapters/wallclock"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/aretw0/vignette/pkg/ports"
	"github.com/aretw0/vignette/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errLoopNeedsRealtime rejects looping a rehearsal, which finishes instantly and would spin.
var errLoopNeedsRealtime = errors.New("--loop requires --realtime")

var playCmd = &cobra.Command{
	Use:   "play [request.yaml...]",
	Short: "Compile and play requests or stored scripts",
	Long: `Plays a playlist built from request files and stored script ids (--id).
By default scripts are rehearsed instantly and their timeline is printed; with
--realtime they run on the wall clock. Ctrl+C stops the playlist.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringSlice("id", nil, "Stored script ids to play after the request files")
	playCmd.Flags().String("scene", "", "Scene to lay out requests on (overrides the requests)")
	playCmd.Flags().Bool("realtime", false, "Play on the wall clock instead of rehearsing")
	playCmd.Flags().Float64("speed", 1, "Playback speed factor for --realtime")
	playCmd.Flags().StringSlice("sounds", nil, "Sounds the host reports as loaded")
	playCmd.Flags().Bool("loop", false, "Repeat the playlist until interrupted (requires --realtime)")
	playCmd.Flags().Bool("events", true, "Print the host timeline after each rehearsed script")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ids, _ := cmd.Flags().GetStringSlice("id")
	if len(args) == 0 && len(ids) == 0 {
		return errors.New("nothing to play: pass request files or --id")
	}
	scene, _ := cmd.Flags().GetString("scene")
	realtime, _ := cmd.Flags().GetBool("realtime")
	speed, _ := cmd.Flags().GetFloat64("speed")
	sounds, _ := cmd.Flags().GetStringSlice("sounds")
	loop, _ := cmd.Flags().GetBool("loop")
	showEvents, _ := cmd.Flags().GetBool("events")
	if loop && !realtime {
		return errLoopNeedsRealtime
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	var playlist []*domain.StagedScript
	for _, path := range args {
		req, err := vignette.LoadRequest(path)
		if err != nil {
			return err
		}
		if scene != "" {
			req.Scene = scene
		}
		script, err := env.Director.Compile(ctx, req)
		if err != nil {
			return err
		}
		script.ID = path
		playlist = append(playlist, script)
	}
	for _, id := range ids {
		script, err := env.Director.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load %q: %w", id, err)
		}
		playlist = append(playlist, script)
	}

	out := cmd.OutOrStdout()
	tty := isTerminal(out)
	profile := termenv.Ascii
	render := tui.Plain
	if tty {
		profile = termenv.NewOutput(os.Stdout).Profile
		render = tui.NewRenderer()
		tui.PrintBanner(out, profile, vignette.Version)
	}
	timeline := tui.NewTimeline(out, profile)

	var host ports.Host
	var rehearsalHost *rehearsal.Host
	if realtime {
		host = wallclock.New(wallclock.WithSpeed(speed), wallclock.WithSounds(sounds...), wallclock.WithLogger(env.Logger))
	} else {
		rehearsalHost = rehearsal.New(rehearsal.WithSounds(sounds...), rehearsal.WithLogger(env.Logger))
		host = rehearsalHost
	}

	p := env.Director.NewPlayer(host, player.WithLifecycleHooks(cli.DebugHooks(env.Logger)))

	var degraded int
	ctrl := runner.New(p, playlist,
		runner.WithLogger(env.Logger),
		runner.WithLoop(loop),
		runner.WithResultHandler(func(r runner.Result) {
			script := playlist[r.Index]
			cli.PrintSystemMessage(out, "%s", titleOf(script))
			printNarration(out, render, script)

			if rehearsalHost != nil {
				if showEvents {
					timeline.Events(rehearsalHost.Events())
				}
				rehearsalHost.Reset()
			}
			if r.Report != nil {
				timeline.Report(r.Report)
				if len(r.Report.Problems()) > 0 {
					degraded++
				}
			}
			switch {
			case r.Skipped:
				cli.PrintSystemMessage(out, "Skipped.")
			case r.Err != nil:
				cli.PrintSystemMessage(out, "Stopped: %v", r.Err)
			}
		}),
	)

	signals := runner.NewSignalManager()
	defer signals.Stop()
	signals.Notify(ctrl.Stop)

	if err := ctrl.Start(ctx); err != nil {
		return err
	}
	results, err := ctrl.Wait()
	if err != nil {
		return err
	}

	env.Logger.Info("playlist done", "played", len(results), "degraded", degraded)
	return nil
}

func titleOf(s *domain.StagedScript) string {
	parts := []string{s.ID}
	if s.Scene != "" {
		parts = append(parts, "on "+s.Scene)
	}
	if s.Classification != "" {
		parts = append(parts, "("+string(s.Classification)+")")
	}
	return strings.Join(parts, " ")
}

func printNarration(w io.Writer, render func(string) (string, error), s *domain.StagedScript) {
	var md strings.Builder
	if s.Narration != "" {
		md.WriteString(s.Narration + "\n\n")
	}
	if s.Feedback != "" {
		md.WriteString("> " + s.Feedback + "\n")
	}
	if md.Len() == 0 {
		return
	}
	text, err := render(md.String())
	if err != nil {
		text = md.String()
	}
	fmt.Fprint(w, text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
