package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SectionDocument is the serialized form of a menu section.
type SectionDocument struct {
	ID    string `json:"id" mapstructure:"id"`
	Label string `json:"label" mapstructure:"label"`
}

// StepDocument is the serialized form of a step. Exactly one of Say or Ask is set.
type StepDocument struct {
	Say string `json:"say,omitempty" mapstructure:"say"`
	Ask string `json:"ask,omitempty" mapstructure:"ask"`
}

// FlowDocument is the serialized form of a flow, as found in catalog files
// and flow frontmatter. Output is a text/template (see TemplateRule).
type FlowDocument struct {
	ID      string         `json:"id" mapstructure:"id"`
	Section string         `json:"section" mapstructure:"section"`
	Name    string         `json:"name" mapstructure:"name"`
	Steps   []StepDocument `json:"steps" mapstructure:"steps"`
	Output  string         `json:"output" mapstructure:"output"`
}

// Document is a complete catalog file.
type Document struct {
	Sections []SectionDocument `json:"sections" mapstructure:"sections"`
	Flows    []FlowDocument    `json:"flows" mapstructure:"flows"`
}

// Step converts the document into a domain step.
func (s StepDocument) Step() (domain.Step, error) {
	switch {
	case s.Say != "" && s.Ask != "":
		return domain.Step{}, fmt.Errorf("step has both say and ask")
	case s.Say != "":
		return domain.Narrate(s.Say), nil
	case s.Ask != "":
		return domain.Question(s.Ask), nil
	}
	return domain.Step{}, fmt.Errorf("step has neither say nor ask")
}

// Definition converts the document into a flow definition.
func (d FlowDocument) Definition() (domain.FlowDefinition, error) {
	if d.ID == "" {
		return domain.FlowDefinition{}, fmt.Errorf("flow document has no id")
	}
	if strings.TrimSpace(d.Output) == "" {
		return domain.FlowDefinition{}, fmt.Errorf("flow %q has no output", d.ID)
	}

	def := domain.FlowDefinition{
		ID:          d.ID,
		Section:     d.Section,
		DisplayName: d.Name,
		Steps:       make([]domain.Step, 0, len(d.Steps)),
	}
	if def.DisplayName == "" {
		def.DisplayName = d.ID
	}
	for i, sd := range d.Steps {
		step, err := sd.Step()
		if err != nil {
			return domain.FlowDefinition{}, fmt.Errorf("flow %q step %d: %w", d.ID, i, err)
		}
		def.Steps = append(def.Steps, step)
	}

	rule, err := TemplateRule(d.ID, d.Output)
	if err != nil {
		return domain.FlowDefinition{}, err
	}
	def.Output = rule
	return def, nil
}

// Decode strictly decodes a generic map (YAML or frontmatter) into v.
// Unknown keys are rejected so typos in flow files surface at load time.
func Decode(raw any, v any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      v,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Parse reads a YAML catalog document.
func Parse(data []byte) ([]domain.Section, []domain.FlowDefinition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	var doc Document
	if err := Decode(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	sections := make([]domain.Section, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		sections = append(sections, domain.Section{ID: s.ID, Label: s.Label})
	}

	flows := make([]domain.FlowDefinition, 0, len(doc.Flows))
	for _, fd := range doc.Flows {
		def, err := fd.Definition()
		if err != nil {
			return nil, nil, err
		}
		flows = append(flows, def)
	}
	return sections, flows, nil
}

// FileLoader loads a YAML catalog file. It implements ports.CatalogLoader.
type FileLoader struct {
	Path string
}

// Load implements ports.CatalogLoader.
func (l FileLoader) Load() ([]domain.Section, []domain.FlowDefinition, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}
