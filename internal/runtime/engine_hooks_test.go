package runtime_test

import (
	"context"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/runtime"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/dsl"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	b := dsl.New()
	b.Add("renew").Say("checking").Ask("how long?").OutputText("renewed")
	cat := newCatalog(t, b)

	var (
		started   []string
		entered   []domain.StepKind
		answers   []domain.AnswerKind
		completed []*domain.FlowEvent
	)
	hooks := domain.LifecycleHooks{
		OnFlowStart: func(ctx context.Context, e *domain.FlowEvent) {
			started = append(started, e.FlowID)
		},
		OnStepEnter: func(ctx context.Context, e *domain.FlowEvent) {
			entered = append(entered, e.StepKind)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			answers = append(answers, e.Answer.Kind)
		},
		OnFlowComplete: func(ctx context.Context, e *domain.FlowEvent) {
			completed = append(completed, e)
		},
	}

	engine := runtime.NewEngine(cat, runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	if _, err := engine.Start(ctx, "renew"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := engine.Continue(ctx); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	if _, err := engine.Answer(ctx, domain.Duration("10"), "10"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	if len(started) != 1 || started[0] != "renew" {
		t.Errorf("Expected one start for 'renew', got: %v", started)
	}
	if len(entered) != 2 || entered[0] != domain.StepNarrate || entered[1] != domain.StepQuestion {
		t.Errorf("Expected [narrate question], got: %v", entered)
	}
	if len(answers) != 1 || answers[0] != domain.AnswerDuration {
		t.Errorf("Expected one duration answer, got: %v", answers)
	}
	if len(completed) != 1 {
		t.Fatalf("Expected one completion, got %d", len(completed))
	}
	if completed[0].Context.Period != "10" || completed[0].StepIndex != -1 {
		t.Errorf("Unexpected completion event: %+v", completed[0])
	}
}
