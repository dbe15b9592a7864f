// Package message collects user-facing narration emitted by the
// simulation core. The core appends plain (text, category) pairs; any
// coalescing of repeats is left to the presentation layer.
package message

// Category classifies a message so the presentation layer can style it.
type Category int

const (
	CategoryInfo Category = iota
	CategoryWelcome
	CategoryPlayerAttack
	CategoryEnemyAttack
	CategoryHealthRecovered
	CategoryNeedsTarget
	CategoryStatusEffect
	CategoryImpossible
	CategoryPlayerDeath
	CategoryEnemyDeath
	CategoryDescend
	CategoryLevelUp
)

// Message is a single narration event.
type Message struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Log is an append-only message history.
type Log struct {
	messages []Message
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Add appends a message.
func (l *Log) Add(text string, category Category) {
	l.messages = append(l.messages, Message{Text: text, Category: category})
}

// Messages returns the full history, oldest first.
func (l *Log) Messages() []Message {
	return l.messages
}

// Tail returns up to the n most recent messages, oldest first.
func (l *Log) Tail(n int) []Message {
	if n >= len(l.messages) {
		return l.messages
	}
	return l.messages[len(l.messages)-n:]
}

// Restore replaces the history, used when loading a saved session.
func (l *Log) Restore(messages []Message) {
	l.messages = append([]Message(nil), messages...)
}

// Len returns the number of messages recorded.
func (l *Log) Len() int {
	return len(l.messages)
}
