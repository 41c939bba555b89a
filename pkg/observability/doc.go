/*
Package observability provides tools for monitoring vignette playback.

NewMetrics registers Prometheus collectors and returns lifecycle hooks that feed them;
pass the hooks to vignette.WithLifecycleHooks or player.WithLifecycleHooks.
*/
package observability
