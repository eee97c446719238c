package ports

import "github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"

// CatalogLoader yields sections and flow definitions in catalog iteration order.
type CatalogLoader interface {
	Load() ([]domain.Section, []domain.FlowDefinition, error)
}
