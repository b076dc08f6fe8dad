package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/casebandit/casebandit/internal/capture"
	"github.com/casebandit/casebandit/internal/config"
	"github.com/casebandit/casebandit/internal/domain"
	"github.com/casebandit/casebandit/internal/httpserver/deps"
	"github.com/casebandit/casebandit/internal/httpserver/mw"
	"github.com/casebandit/casebandit/internal/kv"
	"github.com/casebandit/casebandit/internal/logger"
	"github.com/casebandit/casebandit/internal/notify"
	"github.com/casebandit/casebandit/internal/quicksave"
	"github.com/casebandit/casebandit/internal/shortcut"
	"github.com/casebandit/casebandit/internal/vault"
)

const testToken = "test-token"

type bench struct {
	ts    *httptest.Server
	store *vault.Store
}

func newBench(t *testing.T) *bench {
	t.Helper()

	badger, err := kv.OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = badger.Close() })

	log := logger.New("error", false)
	store := vault.New(badger, log)
	feedback := notify.NewFeedback(notify.LogNotifier{Log: log}, log)
	trigger := make(chan quicksave.Request, 1)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	o := quicksave.New(store, capture.Disabled{}, feedback, log, trigger)
	o.Start(ctx)
	t.Cleanup(o.Stop)

	d := deps.Deps{
		Logger:           log,
		StartTime:        time.Now(),
		Store:            store,
		Feedback:         feedback,
		Matcher:          shortcut.NewMatcher(shortcut.DefaultChord()),
		QuickSaveToken:   testToken,
		QuickSaveTrigger: trigger,
		Backend:          "badger",
	}

	cfg := &config.Config{ListenPort: ":0"}
	s := New(cfg, log, d)
	ts := httptest.NewServer(s.http.Handler)
	t.Cleanup(ts.Close)

	return &bench{ts: ts, store: store}
}

func (b *bench) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, b.ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(mw.TokenHeader, token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestEndToEndQuickSaveFlow(t *testing.T) {
	b := newBench(t)

	// Create a case; the first one becomes default and active.
	resp := b.do(t, http.MethodPost, "/api/cases", map[string]string{"name": "Fraud Q2"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[domain.Case](t, resp)
	require.NotEmpty(t, created.ID)

	// Quick-save with the sender token.
	resp = b.do(t, http.MethodPost, "/api/quicksave",
		map[string]string{"url": "https://example.com/a", "title": "A page"}, testToken)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	_ = resp.Body.Close()

	// The save is asynchronous; wait for the record to land.
	require.Eventually(t, func() bool {
		coll, err := b.store.Load(context.Background())
		if err != nil {
			return false
		}
		c := coll.FindCase(created.ID)
		return c != nil && len(c.URLs) == 1
	}, 2*time.Second, 20*time.Millisecond)

	// The saved record shows up in the list view.
	resp = b.do(t, http.MethodGet, "/api/cases/"+created.ID+"/urls", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decode[[]domain.URLRecord](t, resp)
	require.Len(t, records, 1)
	require.Equal(t, "https://example.com/a", records[0].URL)
	require.Equal(t, domain.StatusTodo, records[0].Status)

	// The badge flashed success.
	resp = b.do(t, http.MethodGet, "/api/badge", nil, "")
	state := decode[notify.State](t, resp)
	require.Equal(t, "✓", state.Badge.Text)
}

func TestQuickSaveRejectsWithoutToken(t *testing.T) {
	b := newBench(t)

	resp := b.do(t, http.MethodPost, "/api/quicksave",
		map[string]string{"url": "https://example.com/a"}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestKeypressTriggersOnChordOnly(t *testing.T) {
	b := newBench(t)

	resp := b.do(t, http.MethodPost, "/api/cases", map[string]string{"name": "alpha"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Wrong chord: matched=false, nothing queued.
	resp = b.do(t, http.MethodPost, "/api/keypress", map[string]any{
		"event": map[string]any{"alt": true, "key": "x"},
		"url":   "https://example.com/a",
	}, testToken)
	out := decode[map[string]bool](t, resp)
	require.False(t, out["matched"])

	// Default chord ctrl+'<': matched and queued.
	resp = b.do(t, http.MethodPost, "/api/keypress", map[string]any{
		"event": map[string]any{"ctrl": true, "key": "<"},
		"url":   "https://example.com/a",
		"title": "A page",
	}, testToken)
	out = decode[map[string]bool](t, resp)
	require.True(t, out["matched"])
	require.True(t, out["queued"])
}

func TestManualSaveUpsertAndExport(t *testing.T) {
	b := newBench(t)

	resp := b.do(t, http.MethodPost, "/api/cases", map[string]string{"name": "alpha"}, "")
	created := decode[domain.Case](t, resp)

	// First manual save creates.
	resp = b.do(t, http.MethodPost, "/api/cases/"+created.ID+"/urls",
		map[string]any{"url": "https://example.com/a", "title": "v1"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Second manual save with the same url merges.
	resp = b.do(t, http.MethodPost, "/api/cases/"+created.ID+"/urls",
		map[string]any{"url": "https://example.com/a", "title": "v2", "status": "done"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	merged := decode[struct {
		Record domain.URLRecord `json:"record"`
		Merged bool             `json:"merged"`
	}](t, resp)
	require.True(t, merged.Merged)
	require.Equal(t, "v2", merged.Record.Title)
	require.Equal(t, 2, merged.Record.VisitCount)

	// Export round-trips through import.
	resp = b.do(t, http.MethodGet, "/api/export?format=json", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported := decode[domain.CaseCollection](t, resp)
	require.Len(t, exported.Cases, 1)
	require.Len(t, exported.Cases[0].URLs, 1)

	resp = b.do(t, http.MethodPost, "/api/import", exported, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestInvalidURLRejectedWithoutMutation(t *testing.T) {
	b := newBench(t)

	resp := b.do(t, http.MethodPost, "/api/cases", map[string]string{"name": "alpha"}, "")
	created := decode[domain.Case](t, resp)

	resp = b.do(t, http.MethodPost, "/api/cases/"+created.ID+"/urls",
		map[string]any{"url": "javascript:alert(1)"}, "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()

	resp = b.do(t, http.MethodGet, "/api/cases/"+created.ID+"/urls", nil, "")
	require.Empty(t, decode[[]domain.URLRecord](t, resp))
}
