package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFlowStart     EventType = "flow_start"
	EventStepEnter     EventType = "step_enter"
	EventFlowComplete  EventType = "flow_complete"
	EventAnswer        EventType = "answer"
	EventUnrecognized  EventType = "unrecognized"
	EventSpeechDropped EventType = "speech_dropped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FlowEvent describes a flow lifecycle transition.
type FlowEvent struct {
	EventBase
	FlowID    string      `json:"flow_id"`
	StepIndex int         `json:"step_index"`
	StepKind  StepKind    `json:"step_kind,omitempty"`
	Context   FlowContext `json:"context"`
}

// AnswerEvent describes an answer applied to the active flow.
type AnswerEvent struct {
	EventBase
	FlowID string `json:"flow_id"`
	Answer Answer `json:"answer"`
	Raw    string `json:"raw,omitempty"`
}

// InputEvent describes input that matched nothing, or an utterance that was dropped.
type InputEvent struct {
	EventBase
	Text string `json:"text"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnFlowStart     func(context.Context, *FlowEvent)
	OnStepEnter     func(context.Context, *FlowEvent)
	OnFlowComplete  func(context.Context, *FlowEvent)
	OnAnswer        func(context.Context, *AnswerEvent)
	OnUnrecognized  func(context.Context, *InputEvent)
	OnSpeechDropped func(context.Context, *InputEvent)
}

// MergeHooks chains several hook sets; each callback fires in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnFlowStart = chain(out.OnFlowStart, h.OnFlowStart)
		out.OnStepEnter = chain(out.OnStepEnter, h.OnStepEnter)
		out.OnFlowComplete = chain(out.OnFlowComplete, h.OnFlowComplete)
		out.OnAnswer = chain(out.OnAnswer, h.OnAnswer)
		out.OnUnrecognized = chain(out.OnUnrecognized, h.OnUnrecognized)
		out.OnSpeechDropped = chain(out.OnSpeechDropped, h.OnSpeechDropped)
	}
	return out
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
