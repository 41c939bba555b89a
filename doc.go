/*
Package vignette turns a handful of semantic elements into a short, staged scene.

A vignette is compiled in two pure steps and then played:

  - Resolve: every requested keyword is looked up in a catalog of action blocks and
    expanded into spawn, move, animate and react actions with symbolic positions.
  - Layout: symbolic positions become collision-free slots on a 5x3 stage grid that
    avoids the scene's props. Moves get a duration and instant appearances become
    staggered walk-ins.
  - Play: a stateful player drives a presentation host (spawn, tween, timers) through
    the staged actions in order, degrading gracefully when an action cannot be done.

Missing keywords, a full grid, absent assets and faulty handlers never abort a scene.
They surface in StagedScript.Missing, StagedScript.Notes and the player's Report.

# Usage

	d, err := vignette.New()
	if err != nil {
		log.Fatal(err)
	}

	script, err := d.Compile(ctx, domain.Request{
		Scene:    "park",
		Elements: []domain.Element{{Keyword: "cat", Count: 3}, {Keyword: "wizard", Hint: "arc:right"}},
		Effects:  []string{"confetti"},
	})
	if err != nil {
		log.Fatal(err)
	}

	p := d.NewPlayer(rehearsal.New())
	report, err := p.Play(ctx, script)

Hosts, stores and catalogs are ports (see pkg/ports); adapters live under pkg/adapters.
*/
package vignette
