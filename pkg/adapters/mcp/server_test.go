package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/catalog"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/session"
)

const visaID = "خروج وعودة"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	h := hub.New()
	ctrl := session.NewController(catalog.Default(), h)
	t.Cleanup(ctrl.Close)
	return NewServer(ctrl, h, "test")
}

func texts(resp SessionResponse) []string {
	var out []string
	for _, ev := range resp.Events {
		if ev.Message != nil {
			out = append(out, ev.Message.Text)
		}
	}
	return out
}

func TestTools_Conversation(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	resp, err := s.handleOpen(ctx, req, NoArgs{})
	require.NoError(t, err)
	assert.Equal(t, []string{session.TextWelcome}, texts(resp))

	resp, err = s.handleSection(ctx, req, SectionArgs{Section: catalog.SectionJawaz})
	require.NoError(t, err)
	assert.Contains(t, texts(resp), "خدمات الجوازات")

	resp, err = s.handleStart(ctx, req, FlowArgs{FlowID: visaID})
	require.NoError(t, err)
	require.NotNil(t, resp.State.ActiveFlow)
	assert.Equal(t, visaID, resp.State.ActiveFlow.FlowID)

	// Walk the flow with buttons until it completes.
	for i := 0; i < 10 && resp.State.ActiveFlow != nil; i++ {
		step := resp.State.ActiveFlow.StepIndex
		def, _ := s.session.Catalog().Lookup(visaID)
		if def.Steps[step].IsQuestion() {
			resp, err = s.handleAnswer(ctx, req, AnswerArgs{Kind: "yes"})
		} else {
			resp, err = s.handleContinue(ctx, req, NoArgs{})
		}
		require.NoError(t, err)
	}
	assert.Nil(t, resp.State.ActiveFlow)
	assert.Contains(t, texts(resp), session.TextAnotherService)
}

func TestTools_FreeText(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	resp, err := s.handleMessage(ctx, req, MessageArgs{Text: "تجديد رخصتي"})
	require.NoError(t, err)
	assert.Equal(t, "تجديد رخصة", resp.State.PendingSuggestedFlow)

	resp, err = s.handleMessage(ctx, req, MessageArgs{Text: "نعم"})
	require.NoError(t, err)
	require.NotNil(t, resp.State.ActiveFlow)
	assert.Equal(t, "تجديد رخصة", resp.State.ActiveFlow.FlowID)
}

func TestTools_AnswerOther(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleStart(ctx, req, FlowArgs{FlowID: "بدل مفقود"})
	require.NoError(t, err)

	resp, err := s.handleOther(ctx, req, NoArgs{})
	require.NoError(t, err)
	assert.True(t, resp.State.AwaitingFreeText)
	assert.Equal(t, []string{session.TextTypeAnswer}, texts(resp))

	resp, err = s.handleMessage(ctx, req, MessageArgs{Text: "نعم أكيد"})
	require.NoError(t, err)
	assert.False(t, resp.State.AwaitingFreeText)
	assert.Equal(t, 1, resp.State.ActiveFlow.StepIndex)
}

func TestTools_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleStart(ctx, req, FlowArgs{FlowID: "missing"})
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)

	_, err = s.handleAnswer(ctx, req, AnswerArgs{Kind: "delivery"})
	assert.ErrorContains(t, err, "invalid answer")

	_, err = s.handleSection(ctx, req, SectionArgs{})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	_, err = s.handleMessage(ctx, req, MessageArgs{Text: "\xff\xfe"})
	assert.ErrorContains(t, err, "input rejected")
}

func TestServer_Registration(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	raw := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	for _, name := range []string{"open_session", "send_message", "select_section", "start_flow", "answer", "continue_flow", "answer_other", "list_flows"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}

	raw = s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"absher://catalog"}}`))
	data, err = json.Marshal(raw)
	require.NoError(t, err)
	assert.Contains(t, string(data), catalog.SectionAhwal)
}

func TestCatalogJSON(t *testing.T) {
	s := newTestServer(t)
	data, err := s.catalogJSON()
	require.NoError(t, err)

	var views []sectionView
	require.NoError(t, json.Unmarshal(data, &views))
	require.Len(t, views, len(catalog.DefaultSections))
	assert.Len(t, views[1].Flows, 3)
}
