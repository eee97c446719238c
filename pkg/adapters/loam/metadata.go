package loam

import (
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
)

// FlowMetadata represents the frontmatter of a flow file.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type FlowMetadata struct {
	ID      string                 `json:"id" mapstructure:"id"`
	Section string                 `json:"section" mapstructure:"section"`
	Name    string                 `json:"name" mapstructure:"name"`
	Steps   []catalog.StepDocument `json:"steps" mapstructure:"steps"`

	// Output is the completion template. When empty the document body is used.
	Output string `json:"output,omitempty" mapstructure:"output"`
}

func (m FlowMetadata) document(id, body string) catalog.FlowDocument {
	out := m.Output
	if out == "" {
		out = body
	}
	return catalog.FlowDocument{
		ID:      id,
		Section: m.Section,
		Name:    m.Name,
		Steps:   m.Steps,
		Output:  out,
	}
}
