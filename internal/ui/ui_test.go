package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
	"github.com/bz888/naeyla/internal/config"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*api.ChatResponse)
	return resp, args.Error(1)
}

func newBoundUI(t *testing.T, backend chat.Backend) (*UI, *chat.Controller) {
	t.Helper()
	u := New(false)
	cfg := config.DefaultConfig()
	cfg.Timeout = time.Second
	controller := chat.NewController(backend, u, cfg)
	u.Bind(controller, nil)
	drain(u)
	return u, controller
}

// drain runs queued widget updates in place of the event loop.
func drain(u *UI) {
	for {
		select {
		case f := <-u.updates:
			f()
		default:
			return
		}
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"/help", "help", []string{}, true},
		{"  /mode advisor ", "mode", []string{"advisor"}, true},
		{"/QUIT", "bye", []string{}, true},
		{"/exit", "bye", []string{}, true},
		{"/unknown thing", "", nil, false},
		{"hello /help", "", nil, false},
		{"what is 1/2?", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args, ok := parseCommand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			if tt.wantOK {
				assert.ElementsMatch(t, tt.wantArgs, args)
			}
		})
	}
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	text := helpText()
	for _, cmd := range commands {
		assert.Contains(t, text, cmd.usage)
	}
}

func TestFormatMessage(t *testing.T) {
	user := formatMessage(chat.Message{Sender: chat.SenderUser, Text: "see [red]this[-]", Mode: api.ModeAdvisor})
	assert.Contains(t, user, "You")
	assert.Contains(t, user, "(advisor)")
	assert.Contains(t, user, tview.Escape("see [red]this[-]"))

	bot := formatMessage(chat.Message{Sender: chat.SenderAssistant, Text: "Plan your priorities."})
	assert.Contains(t, bot, "Naeyla")
	assert.Contains(t, bot, "Plan your priorities.")
}

func TestViewRendersThroughQueue(t *testing.T) {
	u := New(false)

	u.AppendMessage(chat.Message{Sender: chat.SenderUser, Text: "hello", Mode: api.ModeCompanion})
	u.AppendMessage(chat.Message{Sender: chat.SenderAssistant, Text: "hi there"})
	u.textArea.SetText("draft", true)
	u.ClearInput()
	drain(u)

	text := u.textView.GetText(true)
	assert.Less(t, strings.Index(text, "hello"), strings.Index(text, "hi there"))
	assert.Empty(t, u.textArea.GetText())
}

func TestViewTypingAndHealthStatus(t *testing.T) {
	u := New(false)
	u.healthLine = "[green]● ok[-]"

	u.SetTyping(true)
	drain(u)
	assert.Contains(t, u.status.GetText(true), "typing")

	u.SetTyping(false)
	drain(u)
	assert.Contains(t, u.status.GetText(true), "ok")
	assert.NotContains(t, u.status.GetText(true), "typing")
}

func TestViewSingleActiveMode(t *testing.T) {
	u := New(false)

	u.SetActiveMode(api.ModeAdvisor)
	u.SetActiveMode(api.ModeGuardian)
	u.SetActiveMode(api.ModeGuardian)
	drain(u)

	assert.Equal(t, []string{"guardian"}, u.modeBar.GetHighlights())
}

func TestModeTitle(t *testing.T) {
	assert.Equal(t, "Companion", modeTitle(api.ModeCompanion))
	assert.Equal(t, "", modeTitle(""))
}

func TestPlainView(t *testing.T) {
	var out strings.Builder
	view := NewPlainView(&out)

	view.AppendMessage(chat.Message{Sender: chat.SenderUser, Text: "hi", Mode: api.ModeAdvisor})
	view.AppendMessage(chat.Message{Sender: chat.SenderAssistant, Text: "hello"})
	assert.Equal(t, "hello\n", out.String())

	out.Reset()
	view.Echo = true
	view.AppendMessage(chat.Message{Sender: chat.SenderUser, Text: "hi", Mode: api.ModeAdvisor})
	view.AppendMessage(chat.Message{Sender: chat.SenderAssistant, Text: "hello"})
	assert.Equal(t, "You (advisor): hi\nNaeyla: hello\n", out.String())
}

func TestSubmitCommandStaysLocal(t *testing.T) {
	backend := new(MockBackend)
	u, controller := newBoundUI(t, backend)

	u.textArea.SetText("/mode advisor", true)
	u.submit(u.textArea.GetText())
	u.submit("/help")
	drain(u)

	assert.Equal(t, api.ModeAdvisor, controller.ActiveMode())
	assert.Equal(t, []string{"advisor"}, u.modeBar.GetHighlights())
	assert.Contains(t, u.textView.GetText(true), "Mode: Advisor")
	assert.Contains(t, u.textView.GetText(true), "Here are some commands")
	assert.Empty(t, u.textArea.GetText())
	assert.False(t, u.textArea.GetDisabled())
	assert.Empty(t, controller.Transcript())
	backend.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestSubmitDisablesInputUntilReply(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	backend := new(MockBackend)
	backend.On("Chat", mock.Anything, api.ChatRequest{Message: "hi", Mode: api.ModeCompanion}).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&api.ChatResponse{Response: "hello"}, nil).Once()
	u, controller := newBoundUI(t, backend)

	u.textArea.SetText("hi", true)
	u.submit(u.textArea.GetText())
	<-started
	assert.True(t, u.textArea.GetDisabled())

	// A second Enter while the turn is in flight changes nothing.
	u.submit("hi again")
	assert.True(t, u.textArea.GetDisabled())

	close(release)
	require.Eventually(t, func() bool {
		drain(u)
		return !u.textArea.GetDisabled()
	}, time.Second, 5*time.Millisecond)

	messages := controller.Transcript()
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, "hello", messages[1].Text)
	assert.Empty(t, u.textArea.GetText())
	backend.AssertNumberOfCalls(t, "Chat", 1)
}

func TestDispatchReturnsAfterRun(t *testing.T) {
	u := New(false)
	stopped := make(chan struct{})
	go func() {
		u.dispatch()
		close(stopped)
	}()

	// Nothing runs the event loop, so this update is never applied.
	u.queue(func() {})
	close(u.done)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("dispatch kept waiting on a stopped event loop")
	}
}
