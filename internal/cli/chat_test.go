package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
)

func TestRunChat(t *testing.T) {
	var out bytes.Buffer
	err := RunChat(context.Background(), testConfig(), ChatOptions{
		Input:  strings.NewReader("تجديد جواز\n1\nخروج\n"),
		Output: &out,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, session.TextWelcome)
	assert.Contains(t, text, "عرفت خدمتك: تجديد جواز السفر السعودي")
	assert.Contains(t, text, "تحقق من صلاحية الجواز...", "choice 1 is the continue button")
	assert.NotContains(t, text, "🎤", "no banner or mic hint on a plain writer")
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := ServeMCP(context.Background(), testConfig(), "carrier-pigeon", 0, false)
	assert.ErrorContains(t, err, "unknown transport")
}
