package domain

// FlowContext accumulates the answers of the active flow.
// Created empty when a flow starts, discarded when it terminates.
type FlowContext struct {
	// Answer is nil until a Yes/No answer was given.
	Answer   *bool          `json:"answer,omitempty"`
	Period   string         `json:"period,omitempty"`
	Delivery DeliveryMethod `json:"delivery,omitempty"`
	Query    string         `json:"query,omitempty"`
}

// Apply writes the value associated with the answer category.
func (c *FlowContext) Apply(a Answer) {
	switch a.Kind {
	case AnswerYes:
		v := true
		c.Answer = &v
	case AnswerNo:
		v := false
		c.Answer = &v
	case AnswerDuration:
		c.Period = a.Value
	case AnswerDelivery:
		c.Delivery = a.Delivery
	case AnswerQuery:
		c.Query = a.Value
	}
}

// Map flattens the populated fields, for logs and templates.
func (c FlowContext) Map() map[string]any {
	m := make(map[string]any)
	if c.Answer != nil {
		m["answer"] = *c.Answer
	}
	if c.Period != "" {
		m["period"] = c.Period
	}
	if c.Delivery != "" {
		m["delivery"] = string(c.Delivery)
	}
	if c.Query != "" {
		m["query"] = c.Query
	}
	return m
}

// FlowInstance is the single active flow.
type FlowInstance struct {
	FlowID    string      `json:"flow_id"`
	StepIndex int         `json:"step_index"`
	Context   FlowContext `json:"context"`
}

// NewFlowInstance creates an instance positioned at the first step with an empty context.
func NewFlowInstance(flowID string) *FlowInstance {
	return &FlowInstance{FlowID: flowID}
}

// Snapshot returns a copy safe to hand to other goroutines.
func (f *FlowInstance) Snapshot() *FlowInstance {
	if f == nil {
		return nil
	}
	next := *f
	if f.Context.Answer != nil {
		v := *f.Context.Answer
		next.Context.Answer = &v
	}
	return &next
}

// SessionState is the controller-owned conversation state.
type SessionState struct {
	ActiveFlow           *FlowInstance `json:"active_flow,omitempty"`
	AwaitingFreeText     bool          `json:"awaiting_free_text"`
	PendingSuggestedFlow string        `json:"pending_suggested_flow,omitempty"`
}
