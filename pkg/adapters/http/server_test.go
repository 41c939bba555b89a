package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	d, err := vignette.New()
	require.NoError(t, err)
	return NewHandler(d, append([]Option{WithCatalog(catalog.Default().Blocks)}, opts...)...)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCompile(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "POST", "/compile", CompileRequest{Request: domain.Request{
		Scene:    "park",
		Elements: []domain.Element{{Keyword: "cat", Count: 2}, {Keyword: "unicorn"}},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var script domain.StagedScript
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &script))
	assert.Equal(t, "park", script.Scene)
	assert.Equal(t, []string{"unicorn"}, script.Missing)
	require.NotEmpty(t, script.Actions)
	assert.Equal(t, domain.KindSpawnGroup, script.Actions[0].Kind)
	assert.Len(t, script.Actions[0].Placed, 2)

	// Nothing stored without an id.
	w = do(t, h, "GET", "/scripts", nil)
	assert.JSONEq(t, `{"scripts":[]}`, w.Body.String())
}

func TestCompile_BadRequests(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest("POST", "/compile", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = do(t, h, "POST", "/compile", CompileRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScriptLifecycle(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "POST", "/compile", CompileRequest{
		ID:      "party",
		Request: domain.Request{Elements: []domain.Element{{Keyword: "cake"}}, Effects: []string{"confetti"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, "GET", "/scripts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"scripts":["party"]}`, w.Body.String())

	w = do(t, h, "GET", "/scripts/party", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var script domain.StagedScript
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &script))
	assert.Equal(t, "party", script.ID)

	w = do(t, h, "DELETE", "/scripts/party", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/scripts/party", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), domain.ErrScriptNotFound.Error())
}

func TestCatalogHealthInfo(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "GET", "/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Blocks []domain.ActionBlock `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Blocks, catalog.Default().Len())

	w = do(t, h, "GET", "/healthz", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", nil)
	assert.Contains(t, w.Body.String(), strings.TrimSpace(vignette.Version))

	d, err := vignette.New()
	require.NoError(t, err)
	w = do(t, NewHandler(d), "GET", "/catalog", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)
	w := do(t, h, "OPTIONS", "/compile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "vignette_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	h := newTestServer(t, WithMetrics(reg))
	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vignette_test_total 1")

	plain := newTestServer(t)
	w = do(t, plain, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents(t *testing.T) {
	d, err := vignette.New()
	require.NoError(t, err)
	server := &Server{}
	h := NewHandler(d, func(s *Server) { server = s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(wSub, reqSub)
	}()

	require.Eventually(t, func() bool { return server.Streams.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	w := do(t, h, "POST", "/compile", CompileRequest{
		ID:      "duel",
		Request: domain.Request{Elements: []domain.Element{{Keyword: "knight"}}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, h, "DELETE", "/scripts/duel", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Give the stream a moment to drain the buffered events before disconnecting.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `data: {"type":"saved","id":"duel"}`)
	assert.Contains(t, output, `data: {"type":"deleted","id":"duel"}`)
	assert.Zero(t, server.Streams.Subscribers())
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, unsubscribe := sm.Subscribe()

	for i := 0; i < 15; i++ {
		sm.Broadcast(StoreEvent{Type: "saved", ID: "x"})
	}
	assert.Len(t, ch, 10)

	unsubscribe()
	unsubscribe()
	assert.Zero(t, sm.Subscribers())
}
