package domain

// ActionRequest represents something the state machine asks the controller to present.
type ActionRequest struct {
	Type string `json:"type"`
	// Text is the narration, the question or the terminal output.
	Text string `json:"text"`
	// FlowID identifies the flow that produced the action.
	FlowID string `json:"flow_id"`
	// StepIndex is the index of the step being presented (-1 for completion).
	StepIndex int `json:"step_index"`
}

// Standard Action Types
const (
	// ActionNarrate requests a narration followed by a single "continue" acknowledgment.
	ActionNarrate = "NARRATE"

	// ActionAsk requests a question followed by yes/no/other choices.
	ActionAsk = "ASK"

	// ActionComplete carries the terminal output; the instance has been discarded.
	ActionComplete = "COMPLETE"
)
