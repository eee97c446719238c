package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingUI captures everything the controller renders.
type recordingUI struct {
	mu       sync.Mutex
	messages []domain.Message
	rows     [][]domain.Choice
}

func (u *recordingUI) Render(_ context.Context, msg domain.Message) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = append(u.messages, msg)
}

func (u *recordingUI) RenderChoices(_ context.Context, _ string, choices []domain.Choice) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rows = append(u.rows, choices)
}

func (u *recordingUI) texts() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.messages))
	for _, m := range u.messages {
		out = append(out, m.Text)
	}
	return out
}

func (u *recordingUI) last() domain.Message {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.messages) == 0 {
		return domain.Message{}
	}
	return u.messages[len(u.messages)-1]
}

func (u *recordingUI) lastRow() []domain.Choice {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.rows) == 0 {
		return nil
	}
	return u.rows[len(u.rows)-1]
}

func (u *recordingUI) reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = nil
	u.rows = nil
}

func labels(choices []domain.Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Label)
	}
	return out
}

func newController(t *testing.T, opts ...session.Option) (*session.Controller, *recordingUI) {
	t.Helper()
	ui := &recordingUI{}
	c := session.NewController(catalog.Default(), ui, opts...)
	t.Cleanup(c.Close)
	return c, ui
}

func TestController_Open(t *testing.T) {
	c, ui := newController(t)
	c.Open(context.Background())

	require.NotEmpty(t, ui.texts())
	assert.Equal(t, session.TextWelcome, ui.texts()[0])
	assert.Equal(t, []string{
		"خدمات الأحوال الوطنية", "خدمات المرور", "خدمات الجوازات", "خدمات الإقامة", "التفويض والاستعلامات",
	}, labels(ui.lastRow()))
	assert.Equal(t, domain.SelectSectionCommand("ahwal"), ui.lastRow()[0].Command)
}

func TestController_IdentityRenewalByBranch(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.StartFlow(ctx, "تجديد الهوية")
	assert.Equal(t, "أشيّك على صلاحية الهوية...", ui.last().Text)
	assert.Equal(t, []domain.Choice{{Label: session.LabelContinue, Command: domain.ContinueCommand()}}, ui.lastRow())

	state := c.Snapshot()
	require.NotNil(t, state.ActiveFlow)
	assert.Equal(t, 0, state.ActiveFlow.StepIndex)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Dispatch(ctx, ui.lastRow()[0].Command))
	}
	assert.Equal(t, "هل تريد تجديد الهوية الآن؟", ui.last().Text)
	assert.Equal(t, []string{session.LabelYes, session.LabelNo, session.LabelOther}, labels(ui.lastRow()))

	c.SubmitUserInput(ctx, "ايوه")
	assert.Equal(t, "طريقة الاستلام: التوصيل أم استلام من الفرع؟", ui.last().Text)

	c.SubmitUserInput(ctx, "توصيل للفرع")
	assert.Equal(t, "جاري معالجة طلب التجديد...", ui.last().Text)

	state = c.Snapshot()
	require.NotNil(t, state.ActiveFlow)
	assert.Equal(t, domain.DeliveryBranch, state.ActiveFlow.Context.Delivery)

	ui.reset()
	c.Continue(ctx)
	texts := ui.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "تم حجز موعد للفرع: الخميس 10 صباحًا")
	assert.Equal(t, session.TextAnotherService, texts[1])
	assert.Len(t, ui.lastRow(), 5, "main menu is shown again")
	assert.Nil(t, c.Snapshot().ActiveFlow)
}

func TestController_UnknownFlow(t *testing.T) {
	c, ui := newController(t)
	c.StartFlow(context.Background(), "unknown-id")

	assert.Equal(t, session.TextUnavailable, ui.last().Text)
	assert.Equal(t, session.SpeechUnavailable, ui.last().Spoken())
	assert.Nil(t, c.Snapshot().ActiveFlow)
}

func TestController_SuggestionThenYes(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.SubmitUserInput(ctx, "تجديد رخصتي")
	texts := ui.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "تجديد رخصتي", texts[0])
	assert.Equal(t, domain.SpeakerUser, ui.messages[0].Speaker)
	assert.Equal(t, "عرفت خدمتك: تجديد رخصة القيادة", texts[1])
	assert.Equal(t, []domain.Choice{{Label: session.LabelContinue, Command: domain.StartFlowCommand("تجديد رخصة")}}, ui.lastRow())
	assert.Nil(t, c.Snapshot().ActiveFlow, "a suggestion never auto-starts")
	assert.Equal(t, "تجديد رخصة", c.Snapshot().PendingSuggestedFlow)

	c.SubmitUserInput(ctx, "نعم")
	state := c.Snapshot()
	require.NotNil(t, state.ActiveFlow)
	assert.Equal(t, "تجديد رخصة", state.ActiveFlow.FlowID)
	assert.Empty(t, state.PendingSuggestedFlow)
	assert.Equal(t, "أشيّك صلاحية رخصتك...", ui.last().Text)
}

func TestController_StartingPendingFlowConsumesIt(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.SubmitUserInput(ctx, "تجديد جواز")
	require.NoError(t, c.Dispatch(ctx, ui.lastRow()[0].Command))
	assert.Empty(t, c.Snapshot().PendingSuggestedFlow)
}

func TestController_Unrecognized(t *testing.T) {
	var unrecognized []string
	c, ui := newController(t, session.WithLifecycleHooks(domain.LifecycleHooks{
		OnUnrecognized: func(_ context.Context, e *domain.InputEvent) {
			unrecognized = append(unrecognized, e.Text)
		},
	}))

	c.SubmitUserInput(context.Background(), "ودي اسأل عن شي")
	assert.Equal(t, session.TextUnrecognized, ui.last().Text)
	assert.Len(t, ui.lastRow(), 5)
	assert.Equal(t, []string{"ودي اسأل عن شي"}, unrecognized)
}

func TestController_BlankInputIgnored(t *testing.T) {
	c, ui := newController(t)
	c.SubmitUserInput(context.Background(), "   ")
	assert.Empty(t, ui.texts())
}

func TestController_OtherThenFreeText(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.StartFlow(ctx, "استعلام عام")
	require.NoError(t, c.Dispatch(ctx, domain.OtherCommand()))
	assert.Equal(t, session.TextTypeAnswer, ui.last().Text)
	assert.True(t, c.Snapshot().AwaitingFreeText)

	ui.reset()
	c.SubmitUserInput(ctx, "مرور")
	texts := ui.texts()
	require.GreaterOrEqual(t, len(texts), 2)
	assert.Equal(t, "تمت معالجة الاستعلام: مرور", texts[1])
	state := c.Snapshot()
	assert.False(t, state.AwaitingFreeText)
	assert.Nil(t, state.ActiveFlow)
}

func TestController_TypedDurationAnswer(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.StartFlow(ctx, "تجديد رخصة")
	c.Continue(ctx)
	c.Continue(ctx)
	c.SubmitUserInput(ctx, "10 سنوات")
	c.Continue(ctx)

	assert.Contains(t, ui.texts(), "تم تجديد رخصتك (10 سنوات) بنجاح.")
}

func TestController_ButtonAnswers(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.StartFlow(ctx, "نقل ملكية")
	require.NoError(t, c.Dispatch(ctx, ui.lastRow()[1].Command)) // لا
	state := c.Snapshot()
	require.NotNil(t, state.ActiveFlow.Context.Answer)
	assert.False(t, *state.ActiveFlow.Context.Answer)
	assert.Equal(t, 1, state.ActiveFlow.StepIndex)
}

func TestController_RejectsOutOfPlaceEvents(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.ChooseOther(ctx)
	assert.Equal(t, session.TextNoQuestion, ui.last().Text)

	c.ConfirmAnswer(ctx, domain.Yes())
	assert.Equal(t, session.TextNoQuestion, ui.last().Text)

	c.StartFlow(ctx, "تجديد الهوية")
	ui.reset()
	c.ConfirmAnswer(ctx, domain.Yes())
	assert.Equal(t, []string{session.TextNoQuestion}, ui.texts(), "answers are only accepted at questions")
	assert.Equal(t, 0, c.Snapshot().ActiveFlow.StepIndex)

	c.Continue(ctx)
	c.Continue(ctx)
	c.Continue(ctx)
	ui.reset()
	c.Continue(ctx)
	assert.Empty(t, ui.texts(), "a stale continue is ignored")
	assert.Equal(t, 3, c.Snapshot().ActiveFlow.StepIndex)
}

func TestController_TextAtNarrationGoesToResolver(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.StartFlow(ctx, "تجديد الهوية")
	c.SubmitUserInput(ctx, "نعم")
	assert.Equal(t, session.TextUnrecognized, ui.last().Text)
	assert.Equal(t, 0, c.Snapshot().ActiveFlow.StepIndex, "the flow is left untouched")
}

func TestController_Sections(t *testing.T) {
	c, ui := newController(t)
	ctx := context.Background()

	c.SelectMenuSection(ctx, "muroor")
	assert.Equal(t, "خدمات المرور", ui.last().Text)
	assert.Equal(t, []string{"تجديد رخصة القيادة", "نقل ملكية مركبة", "الاستعلام عن المخالفات"}, labels(ui.lastRow()))
	assert.Equal(t, domain.PickFlowCommand("تجديد رخصة"), ui.lastRow()[0].Command)

	require.NoError(t, c.Dispatch(ctx, ui.lastRow()[2].Command))
	assert.Equal(t, domain.Message{Speaker: domain.SpeakerUser, Text: "الاستعلام عن المخالفات"}, ui.last())
	assert.Equal(t, []domain.Choice{{Label: session.LabelContinue, Command: domain.StartFlowCommand("الاستعلام عن المخالفات")}}, ui.lastRow())
	assert.Nil(t, c.Snapshot().ActiveFlow)

	c.SelectMenuSection(ctx, "nope")
	assert.Equal(t, session.TextUnderDev, ui.last().Text)

	c.PickFlow(ctx, "nope")
	assert.Equal(t, session.TextUnavailable, ui.last().Text)
}

func TestController_DispatchErrors(t *testing.T) {
	c, _ := newController(t)
	ctx := context.Background()

	for _, cmd := range []domain.Command{
		{Kind: "bogus"},
		{Kind: domain.CommandAnswer},
		{Kind: domain.CommandAnswer, Answer: &domain.Answer{Kind: domain.AnswerDelivery, Delivery: "drone"}},
		{Kind: domain.CommandStartFlow},
		{Kind: domain.CommandSelectSection},
	} {
		err := c.Dispatch(ctx, cmd)
		assert.ErrorIs(t, err, domain.ErrUnknownCommand, "%+v", cmd)
	}
}

type stubListener struct {
	text string
	err  error
}

func (l stubListener) ListenOnce(context.Context) (string, error) {
	return l.text, l.err
}

func TestController_Listen(t *testing.T) {
	t.Run("Unavailable", func(t *testing.T) {
		c, ui := newController(t)
		err := c.Listen(context.Background())
		assert.ErrorIs(t, err, domain.ErrListenUnavailable)
		assert.Equal(t, session.TextMicUnsupported, ui.last().Text)
		assert.False(t, c.Capabilities().Listen)
		assert.NoError(t, c.Dispatch(context.Background(), domain.Command{Kind: domain.CommandListen}))
	})

	t.Run("Recognized", func(t *testing.T) {
		c, ui := newController(t, session.WithListener(stubListener{text: "تجديد الهوية"}))
		assert.True(t, c.Capabilities().Listen)
		require.NoError(t, c.Listen(context.Background()))
		c.Close()

		texts := ui.texts()
		require.Len(t, texts, 3)
		assert.Equal(t, session.TextListening, texts[0])
		assert.Equal(t, "تجديد الهوية", texts[1])
		assert.Equal(t, "عرفت خدمتك: تجديد بطاقة الهوية الوطنية", texts[2])
	})

	t.Run("Failure", func(t *testing.T) {
		c, ui := newController(t, session.WithListener(stubListener{err: errors.New("permission denied")}))
		require.NoError(t, c.Listen(context.Background()))
		c.Close()

		assert.Equal(t, []string{session.TextListening, session.TextListenFailed}, ui.texts())
		assert.Nil(t, c.Snapshot().ActiveFlow)
	})
}

// gateSynth blocks every utterance until the test ends.
type gateSynth struct {
	mu     sync.Mutex
	spoken []string
}

func (s *gateSynth) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func TestController_NarrationIsExclusive(t *testing.T) {
	synth := &gateSynth{}
	dropped := 0
	c, _ := newController(t,
		session.WithSynthesizer(synth),
		session.WithLifecycleHooks(domain.LifecycleHooks{
			OnSpeechDropped: func(context.Context, *domain.InputEvent) { dropped++ },
		}),
	)
	ctx := context.Background()
	assert.True(t, c.Capabilities().Speech)

	c.Open(ctx)
	c.StartFlow(ctx, "تجديد الهوية")
	c.Close()

	synth.mu.Lock()
	defer synth.mu.Unlock()
	assert.Equal(t, []string{session.SpeechWelcome}, synth.spoken)
	assert.Equal(t, 1, dropped)
}
