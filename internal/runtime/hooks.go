package runtime

import (
	"context"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

func (e *Engine) flowEvent(t domain.EventType) *domain.FlowEvent {
	inst := e.active.Snapshot()
	return &domain.FlowEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		FlowID:    inst.FlowID,
		StepIndex: inst.StepIndex,
		Context:   inst.Context,
	}
}

func (e *Engine) emitFlowStart(ctx context.Context) {
	if e.hooks.OnFlowStart == nil {
		return
	}
	e.hooks.OnFlowStart(ctx, e.flowEvent(domain.EventFlowStart))
}

func (e *Engine) emitStepEnter(ctx context.Context, step domain.Step) {
	if e.hooks.OnStepEnter == nil {
		return
	}
	ev := e.flowEvent(domain.EventStepEnter)
	ev.StepKind = step.Kind
	e.hooks.OnStepEnter(ctx, ev)
}

func (e *Engine) emitFlowComplete(ctx context.Context) {
	if e.hooks.OnFlowComplete == nil {
		return
	}
	ev := e.flowEvent(domain.EventFlowComplete)
	ev.StepIndex = -1
	e.hooks.OnFlowComplete(ctx, ev)
}

func (e *Engine) emitAnswer(ctx context.Context, answer domain.Answer, raw string) {
	if e.hooks.OnAnswer == nil {
		return
	}
	e.hooks.OnAnswer(ctx, &domain.AnswerEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAnswer},
		FlowID:    e.active.FlowID,
		Answer:    answer,
		Raw:       raw,
	})
}
