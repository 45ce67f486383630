package chatModel

import (
	"encoding/json"
	"time"
)

type MessageKind string

const (
	KindUser      MessageKind = "user"
	KindAssistant MessageKind = "assistant"
	KindSystem    MessageKind = "system"
	KindTool      MessageKind = "tool"
)

// Message is one entry in a session's append-only log.
// ID is optional: transcripts returned by the model provider carry
// provider message ids, locally synthesized messages may not. History
// dedup only applies when ID is non-empty - no attribute probing.
type Message struct {
	ID        string            `json:"id,omitempty"`
	Kind      MessageKind       `json:"kind"`
	Content   MessageContent    `json:"content"`
	Ordinal   int               `json:"message_idx"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// MessageContent is the structured payload persisted per message.
type MessageContent struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

type Source struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ParseContent decodes a persisted payload. Malformed rows are tolerated
// by wrapping the raw text instead of failing the read.
func ParseContent(raw string) MessageContent {
	var content MessageContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return MessageContent{Text: raw}
	}
	return content
}

func (c MessageContent) Serialize() string {
	data, err := json.Marshal(c)
	if err != nil {
		return `{"text":""}`
	}
	return string(data)
}

type ChatSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Seeded    bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
