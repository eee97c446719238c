// Package validator checks a catalog for problems that loading cannot catch:
// menu sections without flows and flows the user can never reach by name.
package validator

import (
	"fmt"
	"strings"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/resolve"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
)

// ValidateCatalog reports every issue found, or nil.
func ValidateCatalog(cat *catalog.Catalog) error {
	var errors []string

	for _, s := range cat.Sections() {
		if len(cat.InSection(s.ID)) == 0 {
			errors = append(errors, fmt.Sprintf("Section '%s' has no flows", s.ID))
		}
	}

	for _, f := range cat.All() {
		if f.Section == "" && len(cat.Sections()) > 0 {
			errors = append(errors, fmt.Sprintf("Flow '%s' is not listed in any section", f.ID))
		}

		for i, step := range f.Steps {
			if strings.TrimSpace(step.Text) == "" {
				errors = append(errors, fmt.Sprintf("Flow '%s' step %d has no text", f.ID, i))
			}
		}

		// Typing the flow id must select the flow itself; an earlier flow
		// that accepts the same text shadows it.
		got, rule, ok := resolve.Resolve(cat, f.ID)
		switch {
		case !ok:
			errors = append(errors, fmt.Sprintf("Flow '%s' cannot be recognized by its id", f.ID))
		case got.ID != f.ID:
			errors = append(errors, fmt.Sprintf("Flow '%s' is shadowed by '%s' (rule %s)", f.ID, got.ID, rule))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
