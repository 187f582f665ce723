// Package chat holds the conversation transcript and the plain-text
// renderers that turn classified result views into terminal output.
package chat

import (
	"github.com/RJBOGA/JAP/internal/portal"
	"github.com/RJBOGA/JAP/internal/result"
)

// Speaker identifies who produced a transcript message.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is one transcript entry: either plain text or a classified
// result set with its generated query.
type Message interface {
	Who() Speaker
}

// TextMessage is a plain conversational line.
type TextMessage struct {
	Speaker Speaker
	Text    string
}

func (m TextMessage) Who() Speaker { return m.Speaker }

// ResultMessage is one executed turn: the generated query, the raw result
// and the client's typed interpretation of it.
type ResultMessage struct {
	Speaker        Speaker
	GeneratedQuery string
	Raw            portal.RawResult
	View           result.View
}

func (m ResultMessage) Who() Speaker { return m.Speaker }

// Transcript is the append-only message sequence of one chat session.
// Insertion order is display order; entries are never mutated after append.
type Transcript struct {
	messages []Message
}

// Append adds the next message.
func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or nil when the transcript is empty.
func (t *Transcript) Last() Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// Messages returns a copy of the transcript in display order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
