package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vignette/pkg/adapters/rehearsal"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/observability"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_FedByPlayer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	p := player.New(rehearsal.New(), player.WithLifecycleHooks(m.Hooks()))
	script := &domain.StagedScript{
		ID: "demo",
		Actions: []domain.StagedAction{
			{Action: domain.Action{Kind: domain.KindSpawn, Target: "cat", Asset: "cat"}, At: domain.Vec2{X: 500, Y: 400}},
			{Action: domain.Action{Kind: domain.KindAnimate, Target: "cat", Animation: "dance"}},
			{Action: domain.Action{Kind: domain.KindAnimate, Target: "ghost", Animation: "dance"}},
			{Action: domain.Action{Kind: domain.KindReact, Effect: "no-such-effect"}, At: domain.Vec2{X: 500, Y: 400}},
		},
	}

	_, err = p.Play(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("spawn", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("animate", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("animate", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("react", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Scripts.WithLabelValues("degraded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Playing))
	assert.Equal(t, 3, testutil.CollectAndCount(m.ActionDuration))
}

func TestMetrics_CleanScript(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()
	now := time.Now()

	hooks.OnScriptStart(ctx, &domain.ScriptEvent{Timestamp: now, Actions: 1})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Playing))

	hooks.OnActionStart(ctx, &domain.ActionEvent{Timestamp: now, Index: 0, Kind: domain.KindWait})
	hooks.OnActionEnd(ctx, &domain.ActionEvent{
		Timestamp: now.Add(200 * time.Millisecond),
		Index:     0,
		Kind:      domain.KindWait,
		Outcome:   &domain.Outcome{Status: domain.OutcomeSucceeded},
	})
	hooks.OnScriptEnd(ctx, &domain.ScriptEvent{
		Timestamp: now,
		Outcomes:  []domain.Outcome{{Status: domain.OutcomeSucceeded}},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Scripts.WithLabelValues("clean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("wait", "succeeded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Playing))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
