package interaction

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"scholarsync/internal/types"
)

// Greeting is the first model message of every new transcript.
const Greeting = "Hello! I am your research assistant. I can help you find grants, polish your abstracts, or suggest collaborators."

// Transcript is the assistant conversation: an append-only message list and
// a count of replies still outstanding.
type Transcript struct {
	messages []types.ChatMessage
	pending  int
	now      func() time.Time
}

// NewTranscript returns a transcript holding only the greeting.
func NewTranscript() *Transcript {
	return newTranscript(time.Now)
}

func newTranscript(now func() time.Time) *Transcript {
	t := &Transcript{now: now}
	t.messages = append(t.messages, t.message(types.ChatRoleModel, Greeting))
	return t
}

func (t *Transcript) message(role types.ChatRole, text string) types.ChatMessage {
	return types.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: t.now(),
	}
}

// Send appends input as a user message and counts one outstanding reply.
// Empty or whitespace-only input is rejected: ok is false and nothing changes.
func (t *Transcript) Send(input string) (msg types.ChatMessage, ok bool) {
	if strings.TrimSpace(input) == "" {
		return types.ChatMessage{}, false
	}
	msg = t.message(types.ChatRoleUser, input)
	t.messages = append(t.messages, msg)
	t.pending++
	return msg, true
}

// Receive appends a model reply and settles one outstanding request.
// Replies are appended in the order they arrive.
func (t *Transcript) Receive(text string) types.ChatMessage {
	msg := t.message(types.ChatRoleModel, text)
	t.messages = append(t.messages, msg)
	if t.pending > 0 {
		t.pending--
	}
	return msg
}

// Awaiting reports whether at least one reply is outstanding.
func (t *Transcript) Awaiting() bool { return t.pending > 0 }

// Outstanding returns the number of replies still expected.
func (t *Transcript) Outstanding() int { return t.pending }

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Messages returns a copy of the transcript in display order.
func (t *Transcript) Messages() []types.ChatMessage {
	return append([]types.ChatMessage(nil), t.messages...)
}
