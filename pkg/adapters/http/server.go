package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/presentation/graph"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
)

// Session is the session controller as seen by the HTTP adapter.
type Session interface {
	Open(ctx context.Context)
	SubmitUserInput(ctx context.Context, text string)
	Dispatch(ctx context.Context, cmd domain.Command) error
	Snapshot() domain.SessionState
	Capabilities() session.Capabilities
	Catalog() *catalog.Catalog
}

// Transcript exposes the recorded messages of the session.
type Transcript interface {
	Entries(ctx context.Context) ([]ports.TranscriptEntry, error)
}

// Server serves one session. The Hub must be the UI the session renders into.
type Server struct {
	Session    Session
	Hub        *hub.Hub
	Transcript Transcript
	Metrics    http.Handler
	Version    string
	Logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithTranscript enables GET /session/transcript.
func WithTranscript(t Transcript) Option {
	return func(s *Server) {
		s.Transcript = t
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewServer creates a Server.
func NewServer(sess Session, h *hub.Hub, opts ...Option) *Server {
	s := &Server{
		Session: sess,
		Hub:     h,
		Version: "dev",
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the session.
func NewHandler(sess Session, h *hub.Hub, opts ...Option) http.Handler {
	return enableCORS(NewServer(sess, h, opts...).Routes())
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/session", func(r chi.Router) {
		r.Post("/open", s.Open)
		r.Post("/input", s.SubmitInput)
		r.Post("/commands", s.DispatchCommand)
		r.Post("/listen", s.Listen)
		r.Get("/state", s.GetState)
		r.Get("/events", s.SubscribeEvents)
		r.Get("/transcript", s.GetTranscript)
	})
	r.Get("/flows", s.ListFlows)
	r.Get("/flows/{id}", s.GetFlow)
	r.Get("/flows/{id}/graph", s.GetFlowGraph)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>AbsherAi API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// EventsResponse carries the UI events produced by one request.
type EventsResponse struct {
	Events []domain.UIEvent `json:"events"`
}

// InputRequest is the body of POST /session/input.
type InputRequest struct {
	Text string `json:"text"`
}

// StateResponse is the body of GET /session/state.
type StateResponse struct {
	State        domain.SessionState  `json:"state"`
	Capabilities session.Capabilities `json:"capabilities"`
}

// SectionView groups the flows of a menu section.
type SectionView struct {
	domain.Section
	Flows []domain.FlowDefinition `json:"flows"`
}

// Open handles the POST /session/open request.
func (s *Server) Open(w http.ResponseWriter, r *http.Request) {
	events := s.Hub.Capture(func() {
		s.Session.Open(r.Context())
	})
	s.writeJSON(w, EventsResponse{Events: events})
}

// SubmitInput handles the POST /session/input request.
func (s *Server) SubmitInput(w http.ResponseWriter, r *http.Request) {
	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("SubmitInput: Invalid request body", "error", err)
		return
	}

	text, err := runner.SanitizeInput(body.Text)
	if err != nil {
		http.Error(w, err.Error(), sanitizeStatus(err))
		return
	}

	events := s.Hub.Capture(func() {
		s.Session.SubmitUserInput(r.Context(), text)
	})
	s.writeJSON(w, EventsResponse{Events: events})
}

// DispatchCommand handles the POST /session/commands request.
func (s *Server) DispatchCommand(w http.ResponseWriter, r *http.Request) {
	var cmd domain.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("DispatchCommand: Invalid request body", "error", err)
		return
	}
	if cmd.Kind == domain.CommandSubmit {
		text, err := runner.SanitizeInput(cmd.Text)
		if err != nil {
			http.Error(w, err.Error(), sanitizeStatus(err))
			return
		}
		cmd.Text = text
	}
	s.dispatch(w, r, cmd)
}

// Listen handles the POST /session/listen request. The recognized utterance
// arrives later, on the event stream.
func (s *Server) Listen(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, domain.ListenCommand())
}

func sanitizeStatus(err error) int {
	if errors.Is(err, runner.ErrInputTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd domain.Command) {
	var err error
	events := s.Hub.Capture(func() {
		err = s.Session.Dispatch(r.Context(), cmd)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommand) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Dispatch error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Dispatch failed", "kind", cmd.Kind, "error", err)
		return
	}
	s.writeJSON(w, EventsResponse{Events: events})
}

// GetState handles the GET /session/state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, StateResponse{
		State:        s.Session.Snapshot(),
		Capabilities: s.Session.Capabilities(),
	})
}

// GetTranscript handles the GET /session/transcript request.
func (s *Server) GetTranscript(w http.ResponseWriter, r *http.Request) {
	if s.Transcript == nil {
		http.Error(w, "Transcript disabled", http.StatusNotFound)
		return
	}
	entries, err := s.Transcript.Entries(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Transcript error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Transcript read failed", "error", err)
		return
	}
	if entries == nil {
		entries = []ports.TranscriptEntry{}
	}
	s.writeJSON(w, entries)
}

// ListFlows handles the GET /flows request.
func (s *Server) ListFlows(w http.ResponseWriter, r *http.Request) {
	cat := s.Session.Catalog()
	views := make([]SectionView, 0, len(cat.Sections()))
	for _, sec := range cat.Sections() {
		flows := cat.InSection(sec.ID)
		if flows == nil {
			flows = []domain.FlowDefinition{}
		}
		views = append(views, SectionView{Section: sec, Flows: flows})
	}
	s.writeJSON(w, views)
}

// GetFlow handles the GET /flows/{id} request.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, ok := s.Session.Catalog().Lookup(flowParam(r))
	if !ok {
		http.Error(w, domain.ErrFlowNotFound.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, flow)
}

// GetFlowGraph handles the GET /flows/{id}/graph request.
func (s *Server) GetFlowGraph(w http.ResponseWriter, r *http.Request) {
	flow, ok := s.Session.Catalog().Lookup(flowParam(r))
	if !ok {
		http.Error(w, domain.ErrFlowNotFound.Error(), http.StatusNotFound)
		return
	}
	overlay := graph.OverlayFor(flow.ID, s.Session.Snapshot().ActiveFlow)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(flow, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, map[string]string{
		"app":         "absher-http",
		"version":     strings.TrimSpace(s.Version),
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles the GET /session/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, unsubscribe := s.Hub.Subscribe()
	defer unsubscribe()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.Logger.Error("SSE encode failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Kind, data)
			flusher.Flush()
		}
	}
}

// flowParam returns the decoded flow id. Flow ids are usually Arabic.
func flowParam(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
