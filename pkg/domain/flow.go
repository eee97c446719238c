package domain

// StepKind discriminates the two step shapes.
type StepKind string

const (
	// StepNarrate is a one-way statement acknowledged with a single "continue".
	StepNarrate StepKind = "narrate"
	// StepQuestion halts the flow until a classified answer arrives.
	StepQuestion StepKind = "question"
)

// Step is one entry of a flow. Exactly one shape per step.
type Step struct {
	Kind StepKind `json:"kind"`
	Text string   `json:"text"`
}

// Narrate builds a narration step.
func Narrate(text string) Step {
	return Step{Kind: StepNarrate, Text: text}
}

// Question builds a question step.
func Question(text string) Step {
	return Step{Kind: StepQuestion, Text: text}
}

// IsQuestion reports whether the step waits for an answer.
func (s Step) IsQuestion() bool {
	return s.Kind == StepQuestion
}

// OutputRule produces the terminal narration of a flow from its final context.
// Rules must be pure: no global state is touched.
type OutputRule func(FlowContext) string

// FixedOutput returns a rule that ignores the context.
func FixedOutput(text string) OutputRule {
	return func(FlowContext) string { return text }
}

// FlowDefinition is an immutable scripted service flow.
type FlowDefinition struct {
	ID          string     `json:"id"`
	Section     string     `json:"section"`
	DisplayName string     `json:"name"`
	Steps       []Step     `json:"steps"`
	Output      OutputRule `json:"-"`
}

// Section groups flows under a menu entry.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
