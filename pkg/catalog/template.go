package catalog

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// templateView is the data exposed to output templates.
type templateView struct {
	Answered bool
	Answer   bool
	Period   string
	Delivery string
	Query    string
}

func newTemplateView(ctx domain.FlowContext) templateView {
	v := templateView{
		Period:   ctx.Period,
		Delivery: string(ctx.Delivery),
		Query:    ctx.Query,
	}
	if ctx.Answer != nil {
		v.Answered = true
		v.Answer = *ctx.Answer
	}
	return v
}

// TemplateRule compiles a text/template into an output rule.
// Templates see .Answered, .Answer, .Period, .Delivery and .Query, for example:
//
//	تم تجديد رخصتك ({{or .Period "المدة المختارة"}}) بنجاح.
//
// A template that fails at execution time falls back to its source text.
func TemplateRule(name, src string) (domain.OutputRule, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("invalid output template for %q: %w", name, err)
	}
	// Executing against the zero context surfaces unknown fields at load time.
	if err := tmpl.Execute(&strings.Builder{}, newTemplateView(domain.FlowContext{})); err != nil {
		return nil, fmt.Errorf("invalid output template for %q: %w", name, err)
	}

	return func(ctx domain.FlowContext) string {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, newTemplateView(ctx)); err != nil {
			return src
		}
		return strings.TrimSpace(sb.String())
	}, nil
}
