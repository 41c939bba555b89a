/*
Package runner plays a playlist of staged scripts on one player.

It owns the playback loop so that nothing else needs ambient state: a Controller
starts the loop, skips the script in flight, stops the whole run and clears the
stage between scripts. SignalManager maps SIGINT/SIGTERM onto Controller.Stop
for command-line hosts.

# Usage

	ctrl := runner.New(p, scripts, runner.WithLoop(true))
	if err := ctrl.Start(ctx); err != nil {
		log.Fatal(err)
	}

	signals := runner.NewSignalManager()
	defer signals.Stop()
	signals.Notify(ctrl.Stop)

	results, err := ctrl.Wait()
*/
package runner
