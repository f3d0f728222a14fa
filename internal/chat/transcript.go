package chat

import "sync"

// Transcript is the ordered, append-only list of exchanged messages.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

func (t *Transcript) append(m Message) {
	t.mu.Lock()
	t.messages = append(t.messages, m)
	t.mu.Unlock()
}

// Messages returns a copy in send/receive order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
