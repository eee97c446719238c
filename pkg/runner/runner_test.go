package runner_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
)

func runScript(t *testing.T, script string) string {
	t.Helper()

	var out bytes.Buffer
	term := runner.NewTerminal(&out)
	ctrl := session.NewController(catalog.Default(), term)
	defer ctrl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := runner.NewRunner(term, runner.WithInput(strings.NewReader(script)))
	require.NoError(t, r.Run(ctx, ctrl))
	return out.String()
}

func TestRunner_NumberedChoices(t *testing.T) {
	out := runScript(t, "1\n1\n1\nexit\n")

	assert.Contains(t, out, session.TextWelcome)
	assert.Contains(t, out, "[1] خدمات الأحوال الوطنية")
	assert.Contains(t, out, "[1] تجديد بطاقة الهوية الوطنية")
	assert.Contains(t, out, "أنت: تجديد بطاقة الهوية الوطنية")
	assert.Contains(t, out, "أشيّك على صلاحية الهوية...")
}

func TestRunner_ArabicIndicDigits(t *testing.T) {
	out := runScript(t, "٢\n")
	assert.Contains(t, out, "أبشر: خدمات المرور")
}

func TestRunner_NumberAtQuestionIsAnswer(t *testing.T) {
	out := runScript(t, "تجديد جواز\n1\n1\n2\n1\n")

	assert.Contains(t, out, "[#2] لا")
	assert.Contains(t, out, "أنت: 2")
	assert.Contains(t, out, "تم تجديد الجواز (2) وسيتم التوصيل خلال أيام.")
}

func TestRunner_PrefixedNumberPressesButton(t *testing.T) {
	out := runScript(t, "تجديد جواز\n1\n1\n#2\n1\n")

	assert.NotContains(t, out, "أنت: #2")
	assert.Contains(t, out, "تم تجديد الجواز (المدة المختارة) وسيتم التوصيل خلال أيام.")
}

func TestRunner_FreeText(t *testing.T) {
	out := runScript(t, "تجديد الهوية\nنعم\n")

	assert.Contains(t, out, "أنت: تجديد الهوية")
	assert.Contains(t, out, "عرفت خدمتك: تجديد بطاقة الهوية الوطنية")
	assert.Contains(t, out, "أشيّك على صلاحية الهوية...")
}

func TestRunner_OutOfRangeNumberIsText(t *testing.T) {
	out := runScript(t, "99\n")
	assert.Contains(t, out, "أنت: 99")
	assert.Contains(t, out, session.TextUnrecognized)
}

func TestRunner_ExitStopsReading(t *testing.T) {
	out := runScript(t, "خروج\n2\n")
	assert.NotContains(t, out, "أبشر: خدمات المرور")
}

func TestRunner_MicWithoutListener(t *testing.T) {
	out := runScript(t, "/mic\n")
	assert.Contains(t, out, session.TextMicUnsupported)
}

func TestRunner_RejectsOversizedInput(t *testing.T) {
	t.Setenv(runner.EnvMaxInputSize, "8")

	out := runScript(t, "تجديد الهوية الوطنية\n")
	assert.Contains(t, out, "input exceeds maximum allowed size")
	assert.NotContains(t, out, "أنت: تجديد")
}

func TestRunner_ContextCancellation(t *testing.T) {
	var out bytes.Buffer
	term := runner.NewTerminal(&out)
	ctrl := session.NewController(catalog.Default(), term)
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- runner.NewRunner(term, runner.WithInput(pr)).Run(ctx, ctrl)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}
