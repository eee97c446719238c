package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Catalog is the read-only flow source the engine executes.
type Catalog interface {
	Lookup(id string) (domain.FlowDefinition, bool)
}

// Engine is the flow execution state machine. It holds at most one active
// FlowInstance; starting a flow discards any previous instance.
//
// Engine is not safe for concurrent use. The session controller serializes calls.
type Engine struct {
	catalog Catalog
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	active *domain.FlowInstance
	def    domain.FlowDefinition
}

// Option configures the engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over the given catalog.
func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a fresh instance of the flow at step 0 with an empty context and
// presents its first step. Unknown ids return ErrFlowNotFound and leave the
// current instance untouched.
func (e *Engine) Start(ctx context.Context, flowID string) ([]domain.ActionRequest, error) {
	def, ok := e.catalog.Lookup(flowID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrFlowNotFound, flowID)
	}

	if e.active != nil {
		e.logger.DebugContext(ctx, "discarding active flow", "flow_id", e.active.FlowID, "step", e.active.StepIndex)
	}

	e.def = def
	e.active = domain.NewFlowInstance(flowID)
	e.logger.InfoContext(ctx, "flow started", "flow_id", flowID, "steps", len(def.Steps))
	e.emitFlowStart(ctx)

	return e.present(ctx), nil
}

// Continue acknowledges the current narration step and moves to the next one.
func (e *Engine) Continue(ctx context.Context) ([]domain.ActionRequest, error) {
	step, err := e.current()
	if err != nil {
		return nil, err
	}
	if step.Kind != domain.StepNarrate {
		return nil, domain.ErrNotAwaitingContinue
	}
	return e.advance(ctx), nil
}

// Answer writes the answer's value into the flow context and moves past the
// current question step.
func (e *Engine) Answer(ctx context.Context, answer domain.Answer, raw string) ([]domain.ActionRequest, error) {
	if !answer.Valid() {
		return nil, fmt.Errorf("%w: invalid answer kind %q", domain.ErrUnknownCommand, answer.Kind)
	}
	step, err := e.current()
	if err != nil {
		return nil, err
	}
	if !step.IsQuestion() {
		return nil, domain.ErrNotAwaitingAnswer
	}

	e.active.Context.Apply(answer)
	e.logger.DebugContext(ctx, "answer applied", "flow_id", e.active.FlowID, "step", e.active.StepIndex, "kind", answer.Kind)
	e.emitAnswer(ctx, answer, raw)

	return e.advance(ctx), nil
}

// Active reports whether a flow instance exists.
func (e *Engine) Active() bool {
	return e.active != nil
}

// Instance returns a copy of the active instance, or nil.
func (e *Engine) Instance() *domain.FlowInstance {
	return e.active.Snapshot()
}

// CurrentStep returns the step the active instance is waiting on.
func (e *Engine) CurrentStep() (domain.Step, bool) {
	step, err := e.current()
	return step, err == nil
}

// Definition returns the definition of the active flow.
func (e *Engine) Definition() (domain.FlowDefinition, bool) {
	if e.active == nil {
		return domain.FlowDefinition{}, false
	}
	return e.def, true
}

// Discard drops the active instance without producing output.
func (e *Engine) Discard(ctx context.Context) {
	if e.active == nil {
		return
	}
	e.logger.DebugContext(ctx, "flow discarded", "flow_id", e.active.FlowID, "step", e.active.StepIndex)
	e.active = nil
	e.def = domain.FlowDefinition{}
}

func (e *Engine) current() (domain.Step, error) {
	if e.active == nil {
		return domain.Step{}, domain.ErrNoActiveFlow
	}
	if e.active.StepIndex >= len(e.def.Steps) {
		// present completes instances past their last step, so this is unreachable.
		return domain.Step{}, domain.ErrNoActiveFlow
	}
	return e.def.Steps[e.active.StepIndex], nil
}

func (e *Engine) advance(ctx context.Context) []domain.ActionRequest {
	e.active.StepIndex++
	return e.present(ctx)
}

// present emits the current step, or completes the flow when no steps remain.
func (e *Engine) present(ctx context.Context) []domain.ActionRequest {
	inst := e.active
	if inst.StepIndex >= len(e.def.Steps) {
		return e.complete(ctx)
	}

	step := e.def.Steps[inst.StepIndex]
	e.logger.DebugContext(ctx, "step entered", "flow_id", inst.FlowID, "step", inst.StepIndex, "kind", step.Kind)
	e.emitStepEnter(ctx, step)

	action := domain.ActionRequest{
		Type:      domain.ActionNarrate,
		Text:      step.Text,
		FlowID:    inst.FlowID,
		StepIndex: inst.StepIndex,
	}
	if step.IsQuestion() {
		action.Type = domain.ActionAsk
	}
	return []domain.ActionRequest{action}
}

func (e *Engine) complete(ctx context.Context) []domain.ActionRequest {
	inst := e.active
	output := e.def.Output(inst.Context)

	e.logger.InfoContext(ctx, "flow completed", "flow_id", inst.FlowID, "context", inst.Context.Map())
	e.emitFlowComplete(ctx)

	e.active = nil
	e.def = domain.FlowDefinition{}

	return []domain.ActionRequest{{
		Type:      domain.ActionComplete,
		Text:      output,
		FlowID:    inst.FlowID,
		StepIndex: -1,
	}}
}
