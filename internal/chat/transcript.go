package chat

import (
	"sync"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Status tracks an optimistically appended turn. StatusFailed exists in the
// model but is never assigned today: a turn whose exchange failed stays
// confirmed (see Exchange.Send).
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp string
	Status    Status
}

// Transcript is the append-only, insertion-ordered record of one chat view.
// It lives only as long as the view that owns it.
type Transcript struct {
	mu   sync.Mutex
	msgs []Message
}

func (t *Transcript) append(role Role, content, timestamp string, status Status) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: timestamp,
		Status:    status,
	}
	t.msgs = append(t.msgs, msg)
	return msg
}

func (t *Transcript) setStatus(id string, status Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.msgs {
		if t.msgs[i].ID == id {
			t.msgs[i].Status = status
			return
		}
	}
}

// Messages returns a copy of the transcript in insertion order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}
