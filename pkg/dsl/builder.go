package dsl

import (
	"fmt"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Builder manages catalog construction. Flows keep their insertion order,
// which is the catalog iteration order.
type Builder struct {
	sections []domain.Section
	flows    []*FlowBuilder
	byID     map[string]*FlowBuilder
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		byID: make(map[string]*FlowBuilder),
	}
}

// Section declares a menu section. Declaration order is menu order.
func (b *Builder) Section(id, label string) *Builder {
	b.sections = append(b.sections, domain.Section{ID: id, Label: label})
	return b
}

// Add creates a new flow in the catalog.
// If the flow already exists, it returns the existing builder.
func (b *Builder) Add(id string) *FlowBuilder {
	if fb, ok := b.byID[id]; ok {
		return fb
	}
	fb := &FlowBuilder{
		flow: domain.FlowDefinition{
			ID:          id,
			DisplayName: id,
		},
	}
	b.flows = append(b.flows, fb)
	b.byID[id] = fb
	return fb
}

// Load implements ports.CatalogLoader.
func (b *Builder) Load() ([]domain.Section, []domain.FlowDefinition, error) {
	flows := make([]domain.FlowDefinition, 0, len(b.flows))
	for _, fb := range b.flows {
		if fb.flow.Output == nil {
			return nil, nil, fmt.Errorf("flow %q has no output rule", fb.flow.ID)
		}
		flow := fb.flow
		flow.Steps = append([]domain.Step(nil), fb.flow.Steps...)
		flows = append(flows, flow)
	}
	sections := append([]domain.Section(nil), b.sections...)
	return sections, flows, nil
}
