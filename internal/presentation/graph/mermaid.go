package graph

import (
	"fmt"
	"strings"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the chart.
type Overlay struct {
	// CurrentStep is the index of the step being shown, or -1.
	CurrentStep int
}

// OverlayFor builds an overlay from the active instance, if it runs flowID.
func OverlayFor(flowID string, inst *domain.FlowInstance) *Overlay {
	if inst == nil || inst.FlowID != flowID {
		return nil
	}
	return &Overlay{CurrentStep: inst.StepIndex}
}

// GenerateMermaid produces a Mermaid flowchart of a flow's steps.
// It applies semantic styling:
// - Start: ((Circle))
// - Narrate: [Rectangle]
// - Question: [/Parallelogram/], with the answer buttons on the outgoing edge
// - Output: [[Subroutine]]
// Steps before the overlay's current step are styled as visited.
func GenerateMermaid(f domain.FlowDefinition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	fmt.Fprintf(&sb, "    start((\"%s\"))\n", escapeLabel(f.DisplayName))
	prev, edge := "start", "-->"

	for i, step := range f.Steps {
		id := stepID(i)
		opener, closer := "[", "]"
		if step.IsQuestion() {
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(step.Text), closer)
		fmt.Fprintf(&sb, "    %s %s %s\n", prev, edge, id)

		prev, edge = id, "-->"
		if step.IsQuestion() {
			edge = "-- \"نعم / لا / أخرى\" -->"
		}
	}

	sb.WriteString("    done[[\"✔\"]]\n")
	fmt.Fprintf(&sb, "    %s %s done\n", prev, edge)

	if overlay != nil && overlay.CurrentStep >= 0 && overlay.CurrentStep < len(f.Steps) {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    class start visited;\n")
		for i := 0; i < overlay.CurrentStep; i++ {
			fmt.Fprintf(&sb, "    class %s visited;\n", stepID(i))
		}
		fmt.Fprintf(&sb, "    class %s current;\n", stepID(overlay.CurrentStep))
	}

	return sb.String()
}

func stepID(i int) string {
	return fmt.Sprintf("s%d", i)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
