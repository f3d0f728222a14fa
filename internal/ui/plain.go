package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
)

// PlainView renders a conversation as plain text, for one-shot use outside
// the terminal UI. Only assistant messages are printed unless Echo is set.
type PlainView struct {
	mu   sync.Mutex
	w    io.Writer
	Echo bool
}

func NewPlainView(w io.Writer) *PlainView {
	return &PlainView{w: w}
}

func (v *PlainView) AppendMessage(m chat.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if m.Sender == chat.SenderUser {
		if v.Echo {
			fmt.Fprintf(v.w, "You (%s): %s\n", m.Mode, m.Text)
		}
		return
	}
	if v.Echo {
		fmt.Fprint(v.w, "Naeyla: ")
	}
	fmt.Fprintln(v.w, m.Text)
}

func (v *PlainView) ClearInput()            {}
func (v *PlainView) SetTyping(bool)         {}
func (v *PlainView) SetActiveMode(api.Mode) {}
