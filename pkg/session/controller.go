package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/classify"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/resolve"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/runtime"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/speech"
)

// Capabilities reports which platform affordances are enabled.
type Capabilities struct {
	Speech bool `json:"speech"`
	Listen bool `json:"listen"`
}

// Controller is the session controller. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	engine   *runtime.Engine
	ui       ports.UI
	narrator *speech.Narrator
	synth    ports.Synthesizer
	listener ports.Listener

	hooks  domain.LifecycleHooks
	logger *slog.Logger

	awaitingFreeText bool
	pending          string

	listening atomic.Bool
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks for the whole session.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithSynthesizer enables narration.
func WithSynthesizer(synth ports.Synthesizer) Option {
	return func(c *Controller) {
		c.synth = synth
	}
}

// WithListener enables voice input.
func WithListener(listener ports.Listener) Option {
	return func(c *Controller) {
		c.listener = listener
	}
}

// NewController creates the controller for one session.
func NewController(cat *catalog.Catalog, ui ports.UI, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		catalog: cat,
		ui:      ui,
		logger:  logging.NewNop(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.engine = runtime.NewEngine(cat,
		runtime.WithLifecycleHooks(c.hooks),
		runtime.WithLogger(c.logger),
	)
	c.narrator = speech.NewNarrator(c.synth,
		speech.WithLifecycleHooks(c.hooks),
		speech.WithLogger(c.logger),
	)
	return c
}

// Catalog returns the catalog the session runs on.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Capabilities reports whether speech and listening are available.
func (c *Controller) Capabilities() Capabilities {
	return Capabilities{
		Speech: c.narrator.Available(),
		Listen: c.listener != nil,
	}
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.SessionState{
		ActiveFlow:           c.engine.Instance(),
		AwaitingFreeText:     c.awaitingFreeText,
		PendingSuggestedFlow: c.pending,
	}
}

// Close stops narration and waits for pending listen requests.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
	c.narrator.Close()
}

// withLock executes fn while holding the session lock.
func (c *Controller) withLock(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Open greets the user and shows the main menu.
func (c *Controller) Open(ctx context.Context) {
	c.withLock(func() {
		c.say(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: TextWelcome, Speech: SpeechWelcome})
		c.showMainMenu(ctx)
	})
}

// SubmitUserInput routes typed or recognized text. Blank input is ignored.
func (c *Controller) SubmitUserInput(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	c.withLock(func() {
		c.ui.Render(ctx, userMessage(text))
		c.route(ctx, text)
	})
}

func (c *Controller) route(ctx context.Context, text string) {
	if c.engine.Active() && c.awaitingFreeText {
		c.awaitingFreeText = false
		c.answer(ctx, classify.Classify(text), text)
		return
	}
	if step, ok := c.engine.CurrentStep(); ok && step.IsQuestion() {
		c.answer(ctx, classify.Classify(text), text)
		return
	}

	if flow, rule, ok := resolve.Resolve(c.catalog, text); ok {
		c.logger.DebugContext(ctx, "flow suggested", "flow_id", flow.ID, "rule", rule.String())
		c.pending = flow.ID
		c.say(ctx, recognizedMessage(flow.DisplayName))
		c.ui.RenderChoices(ctx, "", continueChoice(domain.StartFlowCommand(flow.ID)))
		return
	}

	if c.pending != "" && classify.IsYes(text) {
		c.startFlow(ctx, c.pending)
		return
	}

	c.logger.InfoContext(ctx, "input not recognized", "text", text)
	if c.hooks.OnUnrecognized != nil {
		c.hooks.OnUnrecognized(ctx, &domain.InputEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventUnrecognized},
			Text:      text,
		})
	}
	c.say(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: TextUnrecognized, Speech: SpeechUnrecognized})
	c.showMainMenu(ctx)
}

// SelectMenuSection shows the flows of a section.
func (c *Controller) SelectMenuSection(ctx context.Context, sectionID string) {
	c.withLock(func() {
		section, ok := c.catalog.Section(sectionID)
		flows := c.catalog.InSection(sectionID)
		if !ok || len(flows) == 0 {
			c.logger.WarnContext(ctx, "section not available", "section", sectionID, "error", domain.ErrUnknownSection)
			c.say(ctx, botMessage(TextUnderDev))
			return
		}

		c.say(ctx, botMessage(section.Label))
		choices := make([]domain.Choice, 0, len(flows))
		for _, f := range flows {
			choices = append(choices, domain.Choice{Label: f.DisplayName, Command: domain.PickFlowCommand(f.ID)})
		}
		c.ui.RenderChoices(ctx, "", choices)
	})
}

// PickFlow echoes a section-menu selection and asks for confirmation.
func (c *Controller) PickFlow(ctx context.Context, flowID string) {
	c.withLock(func() {
		flow, ok := c.catalog.Lookup(flowID)
		if !ok {
			c.unavailable(ctx, flowID)
			return
		}
		c.ui.Render(ctx, userMessage(flow.DisplayName))
		c.narrator.Say(ctx, prefixPicked+": "+flow.DisplayName)
		c.ui.RenderChoices(ctx, "", continueChoice(domain.StartFlowCommand(flow.ID)))
	})
}

// StartFlow starts a flow, discarding any active one.
func (c *Controller) StartFlow(ctx context.Context, flowID string) {
	c.withLock(func() {
		c.startFlow(ctx, flowID)
	})
}

func (c *Controller) startFlow(ctx context.Context, flowID string) {
	actions, err := c.engine.Start(ctx, flowID)
	if err != nil {
		c.unavailable(ctx, flowID)
		return
	}
	if c.pending == flowID {
		c.pending = ""
	}
	c.awaitingFreeText = false
	c.present(ctx, actions)
}

// ConfirmAnswer applies an answer chosen from a button.
func (c *Controller) ConfirmAnswer(ctx context.Context, answer domain.Answer) {
	c.withLock(func() {
		c.awaitingFreeText = false
		c.answer(ctx, answer, "")
	})
}

func (c *Controller) answer(ctx context.Context, answer domain.Answer, raw string) {
	actions, err := c.engine.Answer(ctx, answer, raw)
	if err != nil {
		c.logger.WarnContext(ctx, "answer rejected", "kind", answer.Kind, "error", err)
		c.note(ctx, TextNoQuestion)
		return
	}
	c.present(ctx, actions)
}

// Continue acknowledges the current narration. Stale acknowledgments are ignored.
func (c *Controller) Continue(ctx context.Context) {
	c.withLock(func() {
		actions, err := c.engine.Continue(ctx)
		if err != nil {
			c.logger.DebugContext(ctx, "continue ignored", "error", err)
			return
		}
		c.present(ctx, actions)
	})
}

// ChooseOther switches the current question to free-text answering.
func (c *Controller) ChooseOther(ctx context.Context) {
	c.withLock(func() {
		step, ok := c.engine.CurrentStep()
		if !ok || !step.IsQuestion() {
			c.note(ctx, TextNoQuestion)
			return
		}
		c.awaitingFreeText = true
		c.note(ctx, TextTypeAnswer)
	})
}

// Listen asks the Listener for one utterance in the background and routes it as
// user input. It returns ErrListenUnavailable when no Listener is configured.
// A request made while already listening is ignored.
func (c *Controller) Listen(ctx context.Context) error {
	if c.listener == nil {
		c.withLock(func() {
			c.note(ctx, TextMicUnsupported)
		})
		return domain.ErrListenUnavailable
	}
	if !c.listening.CompareAndSwap(false, true) {
		c.logger.DebugContext(ctx, "listen already in progress")
		return nil
	}

	c.withLock(func() {
		c.note(ctx, TextListening)
	})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		text, err := c.listener.ListenOnce(c.ctx)
		c.listening.Store(false)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warn("listen failed", "error", err)
			c.withLock(func() {
				c.note(c.ctx, TextListenFailed)
			})
			return
		}
		c.SubmitUserInput(c.ctx, text)
	}()
	return nil
}

// Dispatch executes a typed command. Malformed commands return ErrUnknownCommand;
// every other failure is reported to the user through the UI.
func (c *Controller) Dispatch(ctx context.Context, cmd domain.Command) error {
	switch cmd.Kind {
	case domain.CommandSubmit:
		c.SubmitUserInput(ctx, cmd.Text)
	case domain.CommandSelectSection:
		if cmd.Section == "" {
			return fmt.Errorf("%w: %s requires a section", domain.ErrUnknownCommand, cmd.Kind)
		}
		c.SelectMenuSection(ctx, cmd.Section)
	case domain.CommandPickFlow, domain.CommandStartFlow:
		if cmd.FlowID == "" {
			return fmt.Errorf("%w: %s requires a flow_id", domain.ErrUnknownCommand, cmd.Kind)
		}
		if cmd.Kind == domain.CommandPickFlow {
			c.PickFlow(ctx, cmd.FlowID)
		} else {
			c.StartFlow(ctx, cmd.FlowID)
		}
	case domain.CommandAnswer:
		if cmd.Answer == nil || !cmd.Answer.Valid() {
			return fmt.Errorf("%w: answer requires a valid answer", domain.ErrUnknownCommand)
		}
		c.ConfirmAnswer(ctx, *cmd.Answer)
	case domain.CommandOther:
		c.ChooseOther(ctx)
	case domain.CommandContinue:
		c.Continue(ctx)
	case domain.CommandListen:
		// Unavailability has already been reported to the user.
		if err := c.Listen(ctx); err != nil && !errors.Is(err, domain.ErrListenUnavailable) {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Kind)
	}
	return nil
}

// present renders the engine's action requests.
func (c *Controller) present(ctx context.Context, actions []domain.ActionRequest) {
	for _, act := range actions {
		switch act.Type {
		case domain.ActionNarrate:
			c.say(ctx, botMessage(act.Text))
			c.ui.RenderChoices(ctx, "", continueChoice(domain.ContinueCommand()))
		case domain.ActionAsk:
			c.say(ctx, botMessage(act.Text))
			c.ui.RenderChoices(ctx, "", questionChoices())
		case domain.ActionComplete:
			c.awaitingFreeText = false
			c.say(ctx, botMessage(act.Text))
			c.say(ctx, botMessage(TextAnotherService))
			c.showMainMenu(ctx)
		default:
			c.logger.WarnContext(ctx, "unknown action", "type", act.Type)
		}
	}
}

func (c *Controller) unavailable(ctx context.Context, flowID string) {
	c.logger.WarnContext(ctx, "flow unavailable", "flow_id", flowID, "error", domain.ErrFlowNotFound)
	c.say(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: TextUnavailable, Speech: SpeechUnavailable})
}

func (c *Controller) showMainMenu(ctx context.Context) {
	sections := c.catalog.Sections()
	choices := make([]domain.Choice, 0, len(sections))
	for _, s := range sections {
		choices = append(choices, domain.Choice{Label: s.Label, Command: domain.SelectSectionCommand(s.ID)})
	}
	c.ui.RenderChoices(ctx, "", choices)
}

// say renders a bot message and narrates it.
func (c *Controller) say(ctx context.Context, msg domain.Message) {
	c.ui.Render(ctx, msg)
	c.narrator.Say(ctx, msg.Spoken())
}

// note renders a bot message without narrating it.
func (c *Controller) note(ctx context.Context, text string) {
	c.ui.Render(ctx, botMessage(text))
}
