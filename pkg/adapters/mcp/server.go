package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
)

// CatalogURI is the resource exposing the flow catalog.
const CatalogURI = "absher://catalog"

// SessionResponse is returned by every session tool.
type SessionResponse struct {
	Events []domain.UIEvent     `json:"events" jsonschema_description:"UI events produced by the call, in order"`
	State  domain.SessionState `json:"state" jsonschema_description:"Session state after the call"`
}

// Session is the session controller as seen by the MCP adapter.
type Session interface {
	Open(ctx context.Context)
	SubmitUserInput(ctx context.Context, text string)
	Dispatch(ctx context.Context, cmd domain.Command) error
	Snapshot() domain.SessionState
	Catalog() *catalog.Catalog
}

// Server exposes one session as an MCP Server. The Hub must be the UI the
// session renders into.
type Server struct {
	session   Session
	hub       *hub.Hub
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sess Session, h *hub.Hub, version string, opts ...Option) *Server {
	s := &Server{
		session:   sess,
		hub:       h,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("absher-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Tool arguments.
type (
	NoArgs struct{}

	MessageArgs struct {
		Text string `json:"text"`
	}

	SectionArgs struct {
		Section string `json:"section"`
	}

	FlowArgs struct {
		FlowID string `json:"flow_id"`
	}

	AnswerArgs struct {
		Kind     string `json:"kind"`
		Value    string `json:"value,omitempty"`
		Delivery string `json:"delivery,omitempty"`
	}
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("open_session",
		mcp.WithDescription("Greet the user and show the main menu of service sections."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleOpen))

	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send free text as the user (Arabic). It is matched against services or classified as an answer."),
		mcp.WithString("text", mcp.Required(), mcp.Description("What the user typed or said")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleMessage))

	s.mcpServer.AddTool(mcp.NewTool("select_section",
		mcp.WithDescription("Open a main menu section and list its services."),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section id, see list_flows")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSection))

	s.mcpServer.AddTool(mcp.NewTool("start_flow",
		mcp.WithDescription("Start a service flow, discarding any flow in progress."),
		mcp.WithString("flow_id", mcp.Required(), mcp.Description("Flow id, see list_flows")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("answer",
		mcp.WithDescription("Answer the current question as if a button was pressed."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("yes", "no", "duration", "delivery", "query")),
		mcp.WithString("value", mcp.Description("Raw text for duration and query answers")),
		mcp.WithString("delivery", mcp.Enum("post", "branch"), mcp.Description("Required for delivery answers")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("continue_flow",
		mcp.WithDescription("Acknowledge the current narration and move on."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleContinue))

	s.mcpServer.AddTool(mcp.NewTool("answer_other",
		mcp.WithDescription("Switch the current question to a free-text answer; follow with send_message."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleOther))

	s.mcpServer.AddTool(mcp.NewTool("list_flows",
		mcp.WithDescription("List menu sections and their service flows."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := s.catalogJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

// capture runs fn and wraps the produced events with the resulting state.
func (s *Server) capture(fn func() error) (SessionResponse, error) {
	var err error
	events := s.hub.Capture(func() {
		err = fn()
	})
	if err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{Events: events, State: s.session.Snapshot()}, nil
}

func (s *Server) dispatch(ctx context.Context, cmd domain.Command) (SessionResponse, error) {
	resp, err := s.capture(func() error {
		return s.session.Dispatch(ctx, cmd)
	})
	if err != nil {
		s.logger.Warn("MCP: command rejected", "kind", cmd.Kind, "error", err)
		return SessionResponse{}, fmt.Errorf("command rejected: %w", err)
	}
	return resp, nil
}

func (s *Server) handleOpen(ctx context.Context, _ mcp.CallToolRequest, _ NoArgs) (SessionResponse, error) {
	return s.capture(func() error {
		s.session.Open(ctx)
		return nil
	})
}

func (s *Server) handleMessage(ctx context.Context, _ mcp.CallToolRequest, args MessageArgs) (SessionResponse, error) {
	clean, err := runner.SanitizeInput(args.Text)
	if err != nil {
		s.logger.Warn("MCP: input rejected", "error", err, "size", len(args.Text))
		return SessionResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	return s.capture(func() error {
		s.session.SubmitUserInput(ctx, clean)
		return nil
	})
}

func (s *Server) handleSection(ctx context.Context, _ mcp.CallToolRequest, args SectionArgs) (SessionResponse, error) {
	return s.dispatch(ctx, domain.SelectSectionCommand(args.Section))
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, args FlowArgs) (SessionResponse, error) {
	if _, ok := s.session.Catalog().Lookup(args.FlowID); !ok {
		return SessionResponse{}, fmt.Errorf("%w: %q", domain.ErrFlowNotFound, args.FlowID)
	}
	return s.dispatch(ctx, domain.StartFlowCommand(args.FlowID))
}

func (s *Server) handleAnswer(ctx context.Context, _ mcp.CallToolRequest, args AnswerArgs) (SessionResponse, error) {
	answer := domain.Answer{
		Kind:     domain.AnswerKind(args.Kind),
		Value:    args.Value,
		Delivery: domain.DeliveryMethod(args.Delivery),
	}
	if !answer.Valid() {
		return SessionResponse{}, errors.New("invalid answer: kind must be yes, no, duration, delivery or query")
	}
	return s.dispatch(ctx, domain.AnswerCommand(answer))
}

func (s *Server) handleContinue(ctx context.Context, _ mcp.CallToolRequest, _ NoArgs) (SessionResponse, error) {
	return s.dispatch(ctx, domain.ContinueCommand())
}

func (s *Server) handleOther(ctx context.Context, _ mcp.CallToolRequest, _ NoArgs) (SessionResponse, error) {
	return s.dispatch(ctx, domain.OtherCommand())
}

type sectionView struct {
	domain.Section
	Flows []domain.FlowDefinition `json:"flows"`
}

func (s *Server) catalogJSON() ([]byte, error) {
	cat := s.session.Catalog()
	views := make([]sectionView, 0, len(cat.Sections()))
	for _, sec := range cat.Sections() {
		views = append(views, sectionView{Section: sec, Flows: cat.InSection(sec.ID)})
	}
	return json.Marshal(views)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Service Catalog",
		mcp.WithResourceDescription("Menu sections and the steps of every service flow"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := s.catalogJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
