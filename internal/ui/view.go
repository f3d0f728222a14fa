package ui

import (
	"fmt"
	"io"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
	"github.com/rivo/tview"
)

// tview.Application.QueueUpdateDraw waits for the event loop, so calling it
// from an event handler deadlocks. All widget updates go through one
// ordered queue drained by dispatch instead.

func (u *UI) dispatch() {
	for {
		select {
		case f := <-u.updates:
			if !u.forward(f) {
				return
			}
		case <-u.done:
			return
		}
	}
}

// forward hands f to the event loop and waits for it to run. It gives up
// once Run has returned, since a stopped loop never runs queued updates;
// the helper goroutine then stays parked until the process exits.
func (u *UI) forward(f func()) bool {
	applied := make(chan struct{})
	go func() {
		u.app.QueueUpdateDraw(f)
		close(applied)
	}()

	select {
	case <-applied:
		return true
	case <-u.done:
		return false
	}
}

func (u *UI) queue(f func()) {
	select {
	case u.updates <- f:
	case <-u.done:
	}
}

func (u *UI) AppendMessage(m chat.Message) {
	text := formatMessage(m)
	u.queue(func() {
		fmt.Fprint(u.textView, text)
		u.textView.ScrollToEnd()
	})
}

func (u *UI) ClearInput() {
	u.queue(func() { u.textArea.SetText("", true) })
}

func (u *UI) SetTyping(typing bool) {
	u.mu.Lock()
	u.typing = typing
	u.mu.Unlock()
	u.queue(u.renderStatus)
}

func (u *UI) SetActiveMode(mode api.Mode) {
	u.queue(func() { u.modeBar.Highlight(string(mode)) })
}

// note writes a client-side line into the conversation pane. Notes are not
// part of the transcript.
func (u *UI) note(text string) {
	u.queue(func() {
		fmt.Fprintf(u.textView, "\n[yellow]%s[-]\n", tview.Escape(text))
		u.textView.ScrollToEnd()
	})
}

func (u *UI) renderStatus() {
	u.mu.Lock()
	typing, health := u.typing, u.healthLine
	u.mu.Unlock()

	if typing {
		u.status.SetText("[green]Naeyla is typing...[-]")
		return
	}
	u.status.SetText(health)
}

// DebugWriter feeds the debug console. Lines are dropped rather than
// blocking when the update queue is full.
func (u *UI) DebugWriter() io.Writer {
	return debugWriter{u}
}

type debugWriter struct {
	u *UI
}

func (w debugWriter) Write(p []byte) (int, error) {
	line := tview.Escape(string(p))
	select {
	case w.u.updates <- func() {
		fmt.Fprint(w.u.debugConsole, line)
		w.u.debugConsole.ScrollToEnd()
	}:
	default:
	}
	return len(p), nil
}

func formatMessage(m chat.Message) string {
	switch m.Sender {
	case chat.SenderUser:
		return fmt.Sprintf("\n[red::b]You[-::-] [gray](%s)[-]\n%s\n", m.Mode, tview.Escape(m.Text))
	default:
		return fmt.Sprintf("\n[green::b]Naeyla[-::-]\n%s\n", tview.Escape(m.Text))
	}
}
