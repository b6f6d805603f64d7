package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/scene"
	"github.com/ChicagoDave/softwarecity/pkg/scene2d"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

const (
	buildOK      = "ok"
	buildInvalid = "invalid"
	buildError   = "error"
)

// Server is the local development server that builds a project's city and
// hands it to a browser renderer.
type Server struct {
	projectPath string
	port        int
	opts        scene.Options
	log         *slog.Logger
	metrics     *Metrics
	upgrader    websocket.Upgrader

	mu    sync.RWMutex
	state buildState
}

// buildState is the outcome of the latest build. graph is nil when the
// document was invalid or could not be read.
type buildState struct {
	data   *spec.CityData
	graph  *scene.Graph
	report *validation.Report
	err    error
}

// New creates a server for the given project directory or document.
func New(projectPath string, port int, opts scene.Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		opts:        opts,
		log:         logger,
		metrics:     NewMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local dev server
		},
	}
}

// Rebuild reloads the project document and reassembles the city. The new
// state replaces the cached one even when it failed, so the API always
// reflects the document on disk.
func (s *Server) Rebuild() error {
	start := time.Now()
	st := s.build()

	result := buildOK
	entities, unresolved := 0, 0
	switch {
	case st.err != nil:
		result = buildError
	case st.graph == nil:
		result = buildInvalid
	default:
		entities = len(st.graph.Entities)
		unresolved = st.graph.Metadata.UnresolvedCount
	}
	s.metrics.BuildFinished(result, time.Since(start), entities, unresolved)

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	if st.err != nil {
		s.log.Error("city build failed", "project", s.projectPath, "error", st.err)
		return st.err
	}
	s.log.Info("city built", "project", s.projectPath, "result", result, "summary", st.report.Summary)
	return nil
}

func (s *Server) build() buildState {
	d, report, err := validation.LoadProject(s.projectPath)
	if err != nil {
		return buildState{err: err}
	}
	if d == nil {
		return buildState{report: report}
	}

	g, asmReport, err := scene.Assemble(d, s.opts)
	if errors.Is(err, scene.ErrInvalidDocument) {
		return buildState{data: d, report: report}
	}
	if err != nil {
		return buildState{data: d, report: report, err: err}
	}
	// The assembler repeats the structural checks, so its report supersedes
	// the load report once the document schema has passed.
	asmReport.Merge(scene.ValidateGraph(g))
	return buildState{data: d, graph: g, report: asmReport}
}

func (s *Server) current() buildState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handler returns the HTTP handler serving the API, metrics and index.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/scene", s.metrics.WrapHandler("scene", http.HandlerFunc(s.handleScene))).Methods(http.MethodGet)
	api.Handle("/scene/ws", s.metrics.WrapHandler("scene_ws", http.HandlerFunc(s.handleSceneWS))).Methods(http.MethodGet)
	api.Handle("/plan", s.metrics.WrapHandler("plan", http.HandlerFunc(s.handlePlan))).Methods(http.MethodGet)
	api.Handle("/stats", s.metrics.WrapHandler("stats", http.HandlerFunc(s.handleStats))).Methods(http.MethodGet)
	api.Handle("/validation", s.metrics.WrapHandler("validation", http.HandlerFunc(s.handleValidation))).Methods(http.MethodGet)
	api.Handle("/spec", s.metrics.WrapHandler("spec", http.HandlerFunc(s.handleSpec))).Methods(http.MethodGet)
	api.Handle("/rebuild", s.metrics.WrapHandler("rebuild", http.HandlerFunc(s.handleRebuild))).Methods(http.MethodPost)

	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	return handlers.CompressHandler(r)
}

// Start builds the city once and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Rebuild(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           handlers.LoggingHandler(os.Stderr, s.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("software city server starting", "addr", "http://localhost"+srv.Addr, "project", s.projectPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeUnavailable answers for a build that produced no graph: 500 for
// I/O and decode failures, 422 with the report for invalid documents.
func writeUnavailable(w http.ResponseWriter, st buildState) {
	if st.err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": st.err.Error()})
		return
	}
	if st.report == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "city not built yet"})
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, st.report)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Software City</title></head>
<body style="margin:0;background:#44bee4;color:#111;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Software City</h1>
<p>Scene graph at <code>/api/scene</code>, pushed over <code>/api/scene/ws</code>. Plan view at <code>/api/plan</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	st := s.current()
	if st.graph == nil {
		writeUnavailable(w, st)
		return
	}
	writeJSON(w, http.StatusOK, st.graph)
}

// handleSceneWS pushes the current scene graph to the renderer once and
// closes the connection.
func (s *Server) handleSceneWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	st := s.current()
	var payload any = st.graph
	if st.graph == nil {
		payload = st.report
	}
	if err := conn.WriteJSON(payload); err != nil {
		s.log.Warn("websocket write failed", "error", err)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "scene sent"),
		time.Now().Add(time.Second))
}

func (s *Server) handlePlan(w http.ResponseWriter, _ *http.Request) {
	st := s.current()
	if st.graph == nil {
		writeUnavailable(w, st)
		return
	}
	writeJSON(w, http.StatusOK, scene2d.Assemble2D(st.graph))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	st := s.current()
	if st.data == nil {
		writeUnavailable(w, st)
		return
	}
	params, summary, _ := analytics.Analyze(st.data, s.opts.Margins)
	writeJSON(w, http.StatusOK, map[string]any{
		"parameters": params,
		"summary":    summary,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	st := s.current()
	if st.report == nil {
		writeUnavailable(w, st)
		return
	}
	writeJSON(w, http.StatusOK, st.report)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	st := s.current()
	if st.data == nil {
		writeUnavailable(w, st)
		return
	}
	writeJSON(w, http.StatusOK, st.data)
}

func (s *Server) handleRebuild(w http.ResponseWriter, _ *http.Request) {
	if err := s.Rebuild(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.current().report)
}
