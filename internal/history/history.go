// Package history holds the pure bookkeeping for conversation context:
// bounding a session's message window and merging transcripts without
// duplicates. Nothing here touches storage.
package history

import "github.com/akolanti/GovStackAPI/internal/domain/chatModel"

// Truncate bounds a history to at most maxMessages non-system messages,
// keeping the most recent ones. System messages are always kept and
// placed first, so the result can exceed maxMessages when system
// messages are plentiful - instructions win over the recency budget.
// Inputs are never mutated.
func Truncate(messages []chatModel.Message, maxMessages int) []chatModel.Message {
	if len(messages) <= maxMessages {
		return messages
	}

	var system []chatModel.Message
	var other []chatModel.Message
	for _, msg := range messages {
		if msg.Kind == chatModel.KindSystem {
			system = append(system, msg)
		} else {
			other = append(other, msg)
		}
	}

	if maxMessages < 0 {
		maxMessages = 0
	}
	if len(other) > maxMessages {
		other = other[len(other)-maxMessages:]
	}

	combined := make([]chatModel.Message, 0, len(system)+len(other))
	combined = append(combined, system...)
	combined = append(combined, other...)
	return combined
}

// Merge appends the new messages whose identity is not already present
// in the existing history. Messages without an identity are always
// appended - there is nothing to dedup on. Order is preserved.
func Merge(existing []chatModel.Message, newMessages []chatModel.Message) []chatModel.Message {
	existingIds := make(map[string]bool, len(existing))
	for _, msg := range existing {
		if msg.ID != "" {
			existingIds[msg.ID] = true
		}
	}

	combined := make([]chatModel.Message, 0, len(existing)+len(newMessages))
	combined = append(combined, existing...)

	for _, msg := range newMessages {
		if msg.ID == "" || !existingIds[msg.ID] {
			combined = append(combined, msg)
		}
	}
	return combined
}
