package observability

import (
	"context"
	"log/slog"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFlowStart: func(ctx context.Context, e *domain.FlowEvent) {
			logger.InfoContext(ctx, "flow_start", "flow_id", e.FlowID)
		},
		OnStepEnter: func(ctx context.Context, e *domain.FlowEvent) {
			logger.DebugContext(ctx, "step_enter",
				"flow_id", e.FlowID,
				"step", e.StepIndex,
				"kind", e.StepKind,
			)
		},
		OnFlowComplete: func(ctx context.Context, e *domain.FlowEvent) {
			logger.InfoContext(ctx, "flow_complete",
				"flow_id", e.FlowID,
				"context", e.Context.Map(),
			)
		},
		OnAnswer: func(ctx context.Context, e *domain.AnswerEvent) {
			logger.DebugContext(ctx, "answer",
				"flow_id", e.FlowID,
				"kind", e.Answer.Kind,
			)
		},
		OnUnrecognized: func(ctx context.Context, e *domain.InputEvent) {
			logger.InfoContext(ctx, "unrecognized_input", "text", e.Text)
		},
		OnSpeechDropped: func(ctx context.Context, e *domain.InputEvent) {
			logger.DebugContext(ctx, "speech_dropped", "text", e.Text)
		},
	}
}
