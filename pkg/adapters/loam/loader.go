package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Loader adapts a Loam repository of flow files to the CatalogLoader interface.
// Each document is one flow: frontmatter carries the steps, the body is the
// output template. Flows are ordered by file path.
type Loader struct {
	Repo     *loam.TypedRepository[FlowMetadata]
	sections []domain.Section
}

// Option configures the Loader.
type Option func(*Loader)

// WithSections replaces catalog.DefaultSections.
func WithSections(sections []domain.Section) Option {
	return func(l *Loader) {
		l.sections = sections
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[FlowMetadata], opts ...Option) *Loader {
	l := &Loader{
		Repo:     repo,
		sections: catalog.DefaultSections,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string, opts ...Option) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict keeps numeric types consistent across formats; the catalog is never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[FlowMetadata](repo), opts...), nil
}

// Load implements ports.CatalogLoader.
func (l *Loader) Load() ([]domain.Section, []domain.FlowDefinition, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loam list failed: %w", err)
	}

	slices.SortFunc(docs, func(a, b *loam.DocumentModel[FlowMetadata]) int {
		return strings.Compare(a.ID, b.ID)
	})

	seen := make(map[string]string)
	flows := make([]domain.FlowDefinition, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		// List only carries metadata; the body needs a full read.
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}

		def, err := full.Data.document(id, strings.TrimSpace(full.Content)).Definition()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", doc.ID, err)
		}
		flows = append(flows, def)
	}

	return slices.Clone(l.sections), flows, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
