package loam

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/testutils"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports/tests"
)

func seed(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
	}
}

func TestLoader_Contract(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"01-renew-passport.md": `---
id: renew-passport
section: jawazat
name: تجديد الجواز
steps:
  - say: سيتم تجديد جوازك.
  - ask: هل تريد التوصيل؟
---
تم تجديد الجواز.{{if .Answer}} سيصلك بالبريد.{{end}}`,
		"02-exit-visa.md": `---
section: jawazat
name: تأشيرة خروج وعودة
steps:
  - ask: هل تريد المتابعة؟
output: تم إصدار التأشيرة.
---
`,
	})

	loader := New(loam.NewTypedRepository[FlowMetadata](repo))
	tests.RunCatalogLoaderContract(t, loader, []string{"renew-passport", "02-exit-visa"})
}

func TestLoader_BodyIsOutputTemplate(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"renew.md": `---
id: renew
section: ahwal
name: تجديد
steps:
  - ask: ما المدة؟
---
المدة: {{or .Period "غير محددة"}}`,
	})

	sections, flows, err := New(loam.NewTypedRepository[FlowMetadata](repo)).Load()
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultSections, sections)
	require.Len(t, flows, 1)

	var ctx domain.FlowContext
	assert.Equal(t, "المدة: غير محددة", flows[0].Output(ctx))
	ctx.Apply(domain.Answer{Kind: domain.AnswerDuration, Value: "سنتين"})
	assert.Equal(t, "المدة: سنتين", flows[0].Output(ctx))

	cat, err := catalog.New(sections, flows)
	require.NoError(t, err)
	_, ok := cat.Lookup("renew")
	assert.True(t, ok)
}

func TestLoader_Errors(t *testing.T) {
	t.Run("Collision", func(t *testing.T) {
		tmpDir, repo := testutils.SetupTestRepo(t)
		seed(t, tmpDir, map[string]string{
			"a.md": "---\nid: same\nname: A\n---\nA",
			"b.md": "---\nid: same\nname: B\n---\nB",
		})

		_, _, err := New(loam.NewTypedRepository[FlowMetadata](repo)).Load()
		assert.ErrorContains(t, err, "collision detected")
	})

	t.Run("Missing Output", func(t *testing.T) {
		tmpDir, repo := testutils.SetupTestRepo(t)
		seed(t, tmpDir, map[string]string{
			"empty.md": "---\nid: empty\nname: E\nsteps:\n  - say: مرحبا\n---\n",
		})

		_, _, err := New(loam.NewTypedRepository[FlowMetadata](repo)).Load()
		assert.ErrorContains(t, err, `flow "empty" has no output`)
	})
}

func TestLoader_WithSections(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	seed(t, tmpDir, map[string]string{
		"x.md": "---\nid: x\nsection: custom\nname: X\n---\ndone",
	})

	custom := []domain.Section{{ID: "custom", Label: "خدمات أخرى"}}
	sections, flows, err := New(loam.NewTypedRepository[FlowMetadata](repo), WithSections(custom)).Load()
	require.NoError(t, err)
	assert.Equal(t, custom, sections)
	require.Len(t, flows, 1)
	assert.Equal(t, "custom", flows[0].Section)
}

func TestOpen_BodyOnlyFlows(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, map[string]string{
		"01-a.md": "---\nid: a\nname: A\nsteps:\n  - say: أولاً\n---\nاكتملت الخدمة أ",
		"02-b.md": "---\nid: b\nname: B\nsteps:\n  - ask: هل تريد المتابعة؟\n---\n{{if .Answer}}نعم{{else}}لا{{end}}\n",
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	_, flows, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.Equal(t, "a", flows[0].ID)
	assert.Equal(t, "b", flows[1].ID)

	var ctx domain.FlowContext
	assert.Equal(t, "اكتملت الخدمة أ", flows[0].Output(ctx))
	assert.Equal(t, "لا", flows[1].Output(ctx))
	ctx.Apply(domain.Yes())
	assert.Equal(t, "نعم", flows[1].Output(ctx))
}
