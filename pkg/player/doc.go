/*
Package player executes staged scripts on a presentation host.

A Player is bound to one ports.Host and walks a domain.StagedScript in order: it waits
out each action's delay, dispatches the action to its handler and does not advance
until the handler's tweens and timers have settled. Every action runs behind a local
guard, so a missing target or a faulty handler is reported in the returned Report and
logged, and the script carries on.

# Libraries

  - Move styles: linear, walk, arc, bounce, float, shake, spin-in, drop-in (see Path).
  - Animations: a keyframe library (DefaultMotions); unknown names idle.
  - Effects: particle bursts (DefaultEffects), animated together and destroyed on completion.

Visuals come from an AssetRegistry; unregistered ids get a Placeholder.
*/
package player
