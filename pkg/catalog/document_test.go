package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
sections:
  - id: muroor
    label: خدمات المرور
flows:
  - id: تجديد رخصة
    section: muroor
    name: تجديد رخصة القيادة
    steps:
      - say: أشيّك صلاحية رخصتك...
      - ask: اختر مدة التجديد
    output: 'تم تجديد رخصتك ({{or .Period "المدة المختارة"}}) بنجاح.'
  - id: مخالفات
    section: muroor
    output: لديك مخالفة واحدة.
`

func TestParse(t *testing.T) {
	sections, flows, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []domain.Section{{ID: "muroor", Label: "خدمات المرور"}}, sections)
	require.Len(t, flows, 2)

	renew := flows[0]
	assert.Equal(t, "تجديد رخصة القيادة", renew.DisplayName)
	assert.Equal(t, []domain.Step{
		domain.Narrate("أشيّك صلاحية رخصتك..."),
		domain.Question("اختر مدة التجديد"),
	}, renew.Steps)
	assert.Equal(t, "تم تجديد رخصتك (سنتين) بنجاح.", renew.Output(domain.FlowContext{Period: "سنتين"}))
	assert.Equal(t, "تم تجديد رخصتك (المدة المختارة) بنجاح.", renew.Output(domain.FlowContext{}))

	assert.Equal(t, "مخالفات", flows[1].DisplayName, "name defaults to the id")
	assert.Equal(t, "لديك مخالفة واحدة.", flows[1].Output(domain.FlowContext{}))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"Unknown Key", "flows:\n  - id: a\n    output: x\n    colour: red\n", "colour"},
		{"Both Say And Ask", "flows:\n  - id: a\n    output: x\n    steps:\n      - say: s\n        ask: q\n", "both say and ask"},
		{"Empty Step", "flows:\n  - id: a\n    output: x\n    steps:\n      - {}\n", "neither say nor ask"},
		{"No Output", "flows:\n  - id: a\n", `flow "a" has no output`},
		{"Bad Template", "flows:\n  - id: a\n    output: '{{.Missing}}'\n", "invalid output template"},
		{"Bad YAML", "flows: [", "failed to parse catalog yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	c, err := FromLoader(FileLoader{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = FromLoader(FileLoader{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "failed to read catalog file")
}

func TestTemplateRule_Branches(t *testing.T) {
	rule, err := TemplateRule("identity", `تم التجديد{{if eq .Delivery "branch"}} في الفرع{{else}} بالبريد{{end}}{{if .Answered}} ({{.Answer}}){{end}}`)
	require.NoError(t, err)

	yes := true
	assert.Equal(t, "تم التجديد في الفرع (true)", rule(domain.FlowContext{Delivery: domain.DeliveryBranch, Answer: &yes}))
	assert.Equal(t, "تم التجديد بالبريد", rule(domain.FlowContext{}))
}
