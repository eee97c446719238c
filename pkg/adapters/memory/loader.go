package memory

import (
	"fmt"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Loader implements ports.CatalogLoader over in-memory flow documents.
type Loader struct {
	sections []domain.Section
	docs     []catalog.FlowDocument
}

// NewLoader creates a loader; documents keep their argument order.
func NewLoader(sections []domain.Section, docs ...catalog.FlowDocument) *Loader {
	return &Loader{
		sections: append([]domain.Section(nil), sections...),
		docs:     append([]catalog.FlowDocument(nil), docs...),
	}
}

// NewFromMaps decodes raw documents (as produced by a JSON or YAML decoder).
// This handles strict decoding automatically, improving DX for tests.
func NewFromMaps(sections []domain.Section, raw ...map[string]any) (*Loader, error) {
	docs := make([]catalog.FlowDocument, 0, len(raw))
	for i, m := range raw {
		var doc catalog.FlowDocument
		if err := catalog.Decode(m, &doc); err != nil {
			return nil, fmt.Errorf("flow document %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return NewLoader(sections, docs...), nil
}

// Load implements ports.CatalogLoader.
func (l *Loader) Load() ([]domain.Section, []domain.FlowDefinition, error) {
	flows := make([]domain.FlowDefinition, 0, len(l.docs))
	for _, doc := range l.docs {
		def, err := doc.Definition()
		if err != nil {
			return nil, nil, err
		}
		flows = append(flows, def)
	}
	return append([]domain.Section(nil), l.sections...), flows, nil
}
