package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaira-a/mock-api-files/pkg/blobstore"
	"github.com/aaira-a/mock-api-files/pkg/config"
)

// newTestServer builds a Server around a fake clock, an in-memory blob
// store and a throwaway config, and serves it over httptest.
func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *Server, *clockwork.FakeClock) {
	t.Helper()

	cfg := config.Default()
	clock := clockwork.NewFakeClock()

	all := append([]Option{WithClock(clock)}, opts...)
	s := New(cfg, all...)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, s, clock
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	}
	return resp.StatusCode, out
}

func postJSON(t *testing.T, url string, body any) (int, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func TestServerLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.HTTPPort = 0

	s := New(cfg)
	require.False(t, s.IsRunning())

	require.NoError(t, s.Start())
	require.True(t, s.IsRunning())

	require.Error(t, s.Start(), "second start must fail")

	require.NoError(t, s.Stop())
	require.False(t, s.IsRunning())

	require.NoError(t, s.Stop(), "stop is idempotent")
}

func TestServerNilConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	s := New(nil)
	require.NotNil(t, s.Handler())
	assert.Equal(t, config.DefaultHTTPPort, s.cfg.HTTPPort)
}

func TestHello(t *testing.T) {
	t.Parallel()

	ts, _, _ := newTestServer(t)
	status, body := getJSON(t, ts.URL+"/api/hello")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"hello": "world"}, body)
}

func TestUnknownRouteIs404(t *testing.T) {
	t.Parallel()

	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/no-such-route")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedJSONBodyIs400(t *testing.T) {
	t.Parallel()

	ts, _, _ := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/echo", "application/json", bytes.NewReader([]byte(`{"broken":`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	detail, ok := out["error"].(map[string]any)
	require.True(t, ok, "error detail must be structured")
	assert.NotEmpty(t, detail["message"])
	assert.Equal(t, `{"broken":`, detail["body"])
}

func TestGatewayEventHeaderIsStripped(t *testing.T) {
	t.Parallel()

	ts, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/echo", nil)
	require.NoError(t, err)
	req.Header.Set("X-Apigateway-Event", "opaque-envelope")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	headers, ok := out["echo-headers"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, headers, "x-apigateway-event")
}

func TestCallbackRecordsListing(t *testing.T) {
	t.Parallel()

	store := blobstore.NewMemory()
	require.NoError(t, store.Put(context.Background(), "abc/abc_one.json", map[string]string{"k": "v"}))
	require.NoError(t, store.Put(context.Background(), "abc/abc_two.json", map[string]string{"k": "v"}))
	require.NoError(t, store.Put(context.Background(), "other/other_one.json", map[string]string{"k": "v"}))

	ts, _, _ := newTestServer(t, WithBlobStore(store))

	status, body := getJSON(t, ts.URL+"/api/callback-records/abc")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, float64(2), body["matchCount"])
	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
}

func TestCallbackRecordsWithoutStore(t *testing.T) {
	t.Parallel()

	ts, _, _ := newTestServer(t)

	status, body := getJSON(t, ts.URL+"/api/callback-records/abc")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, float64(0), body["matchCount"])
	assert.NotNil(t, body["error"], "degraded listing carries the failure detail")
}
