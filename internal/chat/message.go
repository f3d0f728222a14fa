package chat

import (
	"time"

	"github.com/bz888/naeyla/internal/api"
	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. Both messages of a turn share TurnID.
type Message struct {
	ID        uuid.UUID
	TurnID    uuid.UUID
	Text      string
	Sender    Sender
	Mode      api.Mode
	CreatedAt time.Time
}

func newMessage(turn uuid.UUID, sender Sender, text string, mode api.Mode, now time.Time) Message {
	return Message{
		ID:        uuid.New(),
		TurnID:    turn,
		Text:      text,
		Sender:    sender,
		Mode:      mode,
		CreatedAt: now,
	}
}
