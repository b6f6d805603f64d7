package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/softwarecity/pkg/scene"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

const demoProject = "../../examples/demo-city"

func newTestServer(t *testing.T, project string) (*Server, *httptest.Server) {
	t.Helper()
	s := New(project, 0, scene.DefaultOptions())
	require.NoError(t, s.Rebuild())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestSceneEndpoint(t *testing.T) {
	_, ts := newTestServer(t, demoProject)

	var g scene.Graph
	status := getJSON(t, ts.URL+"/api/scene", &g)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, g.Entities, 50)
	assert.Equal(t, 10, g.Metadata.StreetCount)
}

func TestValidationEndpoint(t *testing.T) {
	_, ts := newTestServer(t, demoProject)

	var r validation.Report
	status := getJSON(t, ts.URL+"/api/validation", &r)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, r.Valid)
	assert.Equal(t, 1, len(r.Warnings), "billing-legacy is unresolved")
}

func TestPlanAndStatsEndpoints(t *testing.T) {
	_, ts := newTestServer(t, demoProject)

	var plan struct {
		Plots   []any `json:"plots"`
		Streets []any `json:"streets"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/plan", &plan))
	assert.Len(t, plan.Plots, 9)
	assert.Len(t, plan.Streets, 10)

	var stats struct {
		Parameters struct {
			UnitSize float64 `json:"unit_size"`
		} `json:"parameters"`
		Summary struct {
			Areas []any `json:"areas"`
		} `json:"summary"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/stats", &stats))
	assert.Equal(t, 20.0, stats.Parameters.UnitSize)
	assert.Len(t, stats.Summary.Areas, 3)
}

func TestSpecEndpoint(t *testing.T) {
	_, ts := newTestServer(t, demoProject)

	var doc map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/spec", &doc))
	assert.Contains(t, doc, "usageAreas")
}

func TestInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	doc := `{"usageAreas":[{"name":"A","components":[{"name":"x","height":1,"width":0,"length":1}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "software_city.json"), []byte(doc), 0o644))
	_, ts := newTestServer(t, dir)

	var r validation.Report
	assert.Equal(t, http.StatusUnprocessableEntity, getJSON(t, ts.URL+"/api/scene", &r))
	assert.False(t, r.Valid)

	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/validation", &r))
	assert.False(t, r.Valid)
}

func TestRebuildPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "software_city.json")
	write := func(doc string) {
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	}
	write(`{"usageAreas":[{"name":"A","components":[{"name":"x","height":1,"width":1,"length":1}]}]}`)
	_, ts := newTestServer(t, dir)

	write(`{"usageAreas":[{"name":"A","components":[
		{"name":"x","height":1,"width":1,"length":1,"requires":["y"]},
		{"name":"y","height":2,"width":1,"length":1}]}]}`)
	resp, err := http.Post(ts.URL+"/api/rebuild", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var g scene.Graph
	getJSON(t, ts.URL+"/api/scene", &g)
	assert.Equal(t, 2, g.Metadata.ComponentCount)
	assert.Equal(t, 1, g.Metadata.StreetCount)
}

func TestSceneWebSocket(t *testing.T) {
	_, ts := newTestServer(t, demoProject)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/scene/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var g scene.Graph
	require.NoError(t, conn.ReadJSON(&g))
	assert.Len(t, g.EntitiesOfType(scene.EntityBuilding), 9)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, demoProject)
	getJSON(t, ts.URL+"/api/scene", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `softwarecity_builds_total{result="ok"} 1`)
	assert.Contains(t, string(body), "softwarecity_scene_entities 50")
	assert.Contains(t, string(body), `softwarecity_http_requests_total{route="scene",status="200"} 1`)
}

func TestIndex(t *testing.T) {
	_, ts := newTestServer(t, demoProject)
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
