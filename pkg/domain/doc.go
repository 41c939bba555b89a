/*
Package domain contains the core data model of the vignette choreography pipeline.

It defines what flows between the three stages of the pipeline: the static catalog
entries looked up by the resolver, the unresolved stage actions it emits, the staged
(laid-out) actions produced by the layout engine and the per-action outcomes the
player reports. This package is kept pure and free of I/O.

# Key Entities

  - ActionBlock: Static catalog entry for a semantic keyword (character, prop, combo...).
  - Element: One thing a vignette should contain, as requested by the content layer.
  - Action: One scheduled stage instruction with a symbolic position.
  - StagedAction: The same instruction after layout, carrying concrete coordinates and timing.
  - StageScript / StagedScript: The ordered program before and after layout.
  - Outcome: What happened when the player attempted one staged action.
*/
package domain
