// Package catalog is the static registry of flow definitions.
package catalog

import (
	"fmt"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
)

// Catalog is an immutable, ordered registry of flows keyed by id.
// Iteration order is load order and is significant for keyword resolution.
type Catalog struct {
	sections []domain.Section
	flows    []domain.FlowDefinition
	index    map[string]int
}

// New validates and indexes the given flows.
// Flow ids must be unique and every flow must have an output rule.
func New(sections []domain.Section, flows []domain.FlowDefinition) (*Catalog, error) {
	c := &Catalog{
		sections: append([]domain.Section(nil), sections...),
		flows:    make([]domain.FlowDefinition, 0, len(flows)),
		index:    make(map[string]int, len(flows)),
	}

	seenSections := make(map[string]bool, len(sections))
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section with label %q has no id", s.Label)
		}
		if seenSections[s.ID] {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		seenSections[s.ID] = true
	}

	for _, f := range flows {
		if f.ID == "" {
			return nil, fmt.Errorf("flow %q has no id", f.DisplayName)
		}
		if _, dup := c.index[f.ID]; dup {
			return nil, fmt.Errorf("duplicate flow id %q", f.ID)
		}
		if f.Output == nil {
			return nil, fmt.Errorf("flow %q has no output rule", f.ID)
		}
		if f.Section != "" && len(sections) > 0 && !seenSections[f.Section] {
			return nil, fmt.Errorf("flow %q references unknown section %q", f.ID, f.Section)
		}
		for i, s := range f.Steps {
			if s.Kind != domain.StepNarrate && s.Kind != domain.StepQuestion {
				return nil, fmt.Errorf("flow %q step %d has invalid kind %q", f.ID, i, s.Kind)
			}
		}
		c.index[f.ID] = len(c.flows)
		c.flows = append(c.flows, f)
	}
	return c, nil
}

// FromLoader builds a catalog from any loader.
func FromLoader(l ports.CatalogLoader) (*Catalog, error) {
	sections, flows, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return New(sections, flows)
}

// Lookup returns the flow with the given id.
func (c *Catalog) Lookup(id string) (domain.FlowDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.FlowDefinition{}, false
	}
	return c.flows[i], true
}

// All returns every flow in iteration order.
func (c *Catalog) All() []domain.FlowDefinition {
	return append([]domain.FlowDefinition(nil), c.flows...)
}

// Sections returns the menu sections in declaration order.
func (c *Catalog) Sections() []domain.Section {
	return append([]domain.Section(nil), c.sections...)
}

// Section returns the section with the given id.
func (c *Catalog) Section(id string) (domain.Section, bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Section{}, false
}

// InSection returns the flows of a section in iteration order.
func (c *Catalog) InSection(section string) []domain.FlowDefinition {
	var out []domain.FlowDefinition
	for _, f := range c.flows {
		if f.Section == section {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of flows.
func (c *Catalog) Len() int {
	return len(c.flows)
}
