/*
Package dsl provides a fluent builder for hand-authored stage scripts.

The resolver only ever emits spawn, move, animate and react actions. Scripts that
need speech bubbles, sounds, pauses or exits are written with this builder instead
and then laid out like any other script.

Example usage:

	script := dsl.New().
		Narration("The cat has something to say.").
		Spawn("cat", "cat").At(domain.PositionOffstageLeft).Then().
		Move("cat").At(domain.PositionLeft).Style(domain.StyleWalk).Then().
		Emote("cat", "Meow!").Then().
		SFX("meow").Then().
		Wait(500).Then().
		Remove("cat").
		Then().MustBuild()

	staged := layout.Layout(script, "park", scenery.Default())
*/
package dsl
