package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/vignette/pkg/domain"
)

// DebugHooks logs every playback event at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnScriptStart: func(ctx context.Context, e *domain.ScriptEvent) {
			logger.Debug("Script Start", "script_id", e.ScriptID, "scene", e.Scene, "actions", e.Actions)
		},
		OnScriptEnd: func(ctx context.Context, e *domain.ScriptEvent) {
			logger.Debug("Script End", "script_id", e.ScriptID, "outcomes", len(e.Outcomes))
		},
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			logger.Debug("Action Start", "index", e.Index, "kind", e.Kind, "target", e.Target)
		},
		OnActionEnd: func(ctx context.Context, e *domain.ActionEvent) {
			if e.Outcome != nil && e.Outcome.Status != domain.OutcomeSucceeded {
				logger.Debug("Action End", "index", e.Index, "kind", e.Kind, "status", e.Outcome.Status, "err", e.Outcome.Reason)
				return
			}
			logger.Debug("Action End", "index", e.Index, "kind", e.Kind)
		},
	}
}
