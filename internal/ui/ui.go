package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
	"github.com/bz888/naeyla/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HealthChecker probes the endpoint for the status line.
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// UI is the terminal chat window: mode bar, conversation, status line,
// input area and an optional debug console.
type UI struct {
	app          *tview.Application
	modeBar      *tview.TextView
	textView     *tview.TextView
	status       *tview.TextView
	textArea     *tview.TextArea
	debugConsole *tview.TextView
	mainFlex     *tview.Flex

	updates chan func()
	done    chan struct{}

	mu         sync.Mutex
	typing     bool
	healthLine string
	showDebug  bool

	ctx        context.Context
	controller *chat.Controller
	health     HealthChecker
	localLog   *slog.Logger
}

// New builds the widgets. Nothing is drawn until Run.
func New(dev bool) *UI {
	u := &UI{
		app:        tview.NewApplication(),
		updates:    make(chan func(), 1024),
		done:       make(chan struct{}),
		showDebug:  dev,
		healthLine: "[gray]checking backend...[-]",
		ctx:        context.Background(),
		localLog:   logger.NewLogger("views"),
	}
	u.app.EnablePaste(true)
	u.app.EnableMouse(true)

	u.modeBar = initModeBar()
	u.textView = initChatViewer()
	u.status = tview.NewTextView().SetDynamicColors(true)
	u.textArea = initChatInput()
	u.debugConsole = initDebugConsole()
	return u
}

func initModeBar() *tview.TextView {
	bar := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWrap(false)

	var b strings.Builder
	for i, mode := range api.Modes() {
		fmt.Fprintf(&b, `["%s"] F%d %s [""]  `, mode, i+1, modeTitle(mode))
	}
	bar.SetText(b.String())
	return bar
}

func initChatViewer() *tview.TextView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetTitle("Conversation").SetBorder(true)
	textView.SetScrollable(true)
	return textView
}

func initChatInput() *tview.TextArea {
	textArea := tview.NewTextArea().SetPlaceholder("Message Naeyla... (/help for commands)")
	textArea.SetTitle("Message").SetBorder(true)
	return textArea
}

func initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	return console
}

// Bind attaches the controller driving the conversation and the health
// probe used for the status line. It must be called before Run.
func (u *UI) Bind(controller *chat.Controller, health HealthChecker) {
	u.controller = controller
	u.health = health
}

// Run blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	if u.controller == nil {
		return fmt.Errorf("ui: no controller bound")
	}

	u.localLog = logger.NewLogger("views")
	u.ctx = ctx

	subFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.modeBar, 1, 0, false).
		AddItem(u.textView, 0, 1, false).
		AddItem(u.status, 1, 0, false).
		AddItem(u.textArea, 6, 0, true)
	u.mainFlex = tview.NewFlex().
		AddItem(subFlex, 0, 2, true)

	if u.showDebug {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
	}

	u.setInputCapture()
	u.renderStatus()

	go u.dispatch()
	defer close(u.done)

	go func() {
		select {
		case <-ctx.Done():
			u.app.Stop()
		case <-u.done:
		}
	}()
	go u.checkHealth()

	u.localLog.Info("starting chat view", "mode", u.controller.ActiveMode())
	return u.app.SetRoot(u.mainFlex, true).SetFocus(u.textArea).Run()
}

func (u *UI) setInputCapture() {
	u.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		modes := api.Modes()
		switch event.Key() {
		case tcell.KeyF1:
			u.controller.SelectMode(string(modes[0]))
			return nil
		case tcell.KeyF2:
			u.controller.SelectMode(string(modes[1]))
			return nil
		case tcell.KeyF3:
			u.controller.SelectMode(string(modes[2]))
			return nil
		}
		return event
	})

	u.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter {
			u.app.SetFocus(u.textArea)
			return nil
		}
		return event
	})

	u.textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyESC:
			if u.textView.GetText(false) != "" {
				u.app.SetFocus(u.textView)
			}
			return nil
		case tcell.KeyEnter:
			if event.Modifiers()&tcell.ModAlt != 0 {
				// Alt+Enter inserts a newline.
				return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
			}
			u.submit(u.textArea.GetText())
			return nil
		}
		return event
	})
}

// submit runs on the event loop. Commands are handled locally; anything
// else becomes a turn on a separate goroutine while the input is disabled.
// A disabled TextArea still sees key events, so the flag is checked here.
func (u *UI) submit(content string) {
	if strings.TrimSpace(content) == "" || u.textArea.GetDisabled() || u.controller.Pending() {
		return
	}

	if name, args, ok := parseCommand(content); ok {
		u.textArea.SetText("", true)
		u.runCommand(name, args)
		return
	}

	u.textArea.SetDisabled(true)
	go func() {
		if err := u.controller.Submit(u.ctx, content); err != nil {
			// The turn in flight re-enables the input when it completes.
			u.localLog.Warn("submit rejected", "error", err)
			return
		}
		u.queue(func() {
			u.textArea.SetDisabled(false)
			u.app.SetFocus(u.textArea)
		})
	}()
}

func (u *UI) checkHealth() {
	if u.health == nil {
		return
	}

	health, err := u.health.Health(u.ctx)
	line := "[red]○ backend unreachable[-]"
	if err != nil {
		u.localLog.Warn("health check failed", "error", err)
	} else {
		line = fmt.Sprintf("[green]● %s[-] [gray]%s[-]", tview.Escape(health.Status), tview.Escape(health.Model))
	}

	u.mu.Lock()
	u.healthLine = line
	u.mu.Unlock()
	u.queue(u.renderStatus)
}

func (u *UI) toggleDebugConsole() {
	u.mu.Lock()
	u.showDebug = !u.showDebug
	show := u.showDebug
	u.mu.Unlock()

	if show {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
		u.note("Debug console enabled")
	} else {
		u.mainFlex.RemoveItem(u.debugConsole)
		u.note("Debug console disabled")
	}
}

func (u *UI) quit() {
	u.note("Bye bye")
	u.localLog.Info("shutting down")
	u.app.Stop()
}

func modeTitle(mode api.Mode) string {
	s := string(mode)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
