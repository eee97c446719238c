package dsl

import "github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"

// FlowBuilder provides a fluent API for configuring a flow.
type FlowBuilder struct {
	flow domain.FlowDefinition
}

// In sets the section the flow is listed under.
func (f *FlowBuilder) In(section string) *FlowBuilder {
	f.flow.Section = section
	return f
}

// Named sets the display name (defaults to the id).
func (f *FlowBuilder) Named(name string) *FlowBuilder {
	f.flow.DisplayName = name
	return f
}

// Say appends a narration step.
func (f *FlowBuilder) Say(text string) *FlowBuilder {
	f.flow.Steps = append(f.flow.Steps, domain.Narrate(text))
	return f
}

// Ask appends a question step.
func (f *FlowBuilder) Ask(text string) *FlowBuilder {
	f.flow.Steps = append(f.flow.Steps, domain.Question(text))
	return f
}

// Output sets the terminal output rule.
func (f *FlowBuilder) Output(rule domain.OutputRule) *FlowBuilder {
	f.flow.Output = rule
	return f
}

// OutputText sets a terminal output that ignores the context.
func (f *FlowBuilder) OutputText(text string) *FlowBuilder {
	f.flow.Output = domain.FixedOutput(text)
	return f
}
