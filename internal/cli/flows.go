package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/presentation/graph"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// PrintFlows lists the catalog grouped by menu section.
func PrintFlows(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range cat.Sections() {
		fmt.Fprintf(tw, "%s\n", s.Label)
		for _, f := range cat.InSection(s.ID) {
			fmt.Fprintf(tw, "  %s\t%s\t%d\n", f.ID, f.DisplayName, len(f.Steps))
		}
	}
	return tw.Flush()
}

// PrintGraph writes the Mermaid diagram of one flow.
func PrintGraph(w io.Writer, cat *catalog.Catalog, flowID string) error {
	f, ok := cat.Lookup(flowID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrFlowNotFound, flowID)
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(f, nil))
	return err
}
