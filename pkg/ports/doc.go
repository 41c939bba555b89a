/*
Package ports defines the driven ports (interfaces) of the vignette pipeline.

These interfaces decouple the resolver, layout engine and player from the concrete
collaborators they depend on: the keyword catalog, the per-scene scenery, the
presentation host that actually draws things and the stores that keep compiled scripts.

# Key Interfaces

  - Catalog: Read-only keyword → ActionBlock lookup (including aliases).
  - Scenery: Static prop coordinates per scene, used to block layout slots.
  - Host: Create/destroy visuals, tween numeric properties, schedule delayed callbacks.
  - ScriptStore: Persists laid-out scripts (memory, file or Redis).
*/
package ports
