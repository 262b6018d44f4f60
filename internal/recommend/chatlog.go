package recommend

import (
	"sync"
	"time"
)

// ChatMessage is one entry in a table's conversation with the waiter bot.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "model"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatLog keeps a per-conversation message history with a monotonic
// sequence guard: each outgoing request takes a sequence number, and a
// response is only appended if no newer request was issued meanwhile. Slow
// upstream replies that complete out of order are dropped rather than being
// interleaved after later answers.
type ChatLog struct {
	mu       sync.Mutex
	messages []ChatMessage
	nextSeq  uint64
	applied  uint64
	now      func() time.Time
}

// NewChatLog creates an empty conversation log.
func NewChatLog() *ChatLog {
	return &ChatLog{now: time.Now}
}

// Begin records the user's utterance and reserves a sequence number for the
// reply that will answer it.
func (l *ChatLog) Begin(utterance string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSeq++
	l.messages = append(l.messages, ChatMessage{
		Role:      "user",
		Text:      utterance,
		Timestamp: l.now(),
	})
	return l.nextSeq
}

// Complete appends the model's reply for the request with the given
// sequence number. It reports false, and appends nothing, when a newer
// request has already been answered.
func (l *ChatLog) Complete(seq uint64, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.applied {
		return false
	}
	l.applied = seq
	l.messages = append(l.messages, ChatMessage{
		Role:      "model",
		Text:      text,
		Timestamp: l.now(),
	})
	return true
}

// Messages returns a copy of the conversation so far.
func (l *ChatLog) Messages() []ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}
