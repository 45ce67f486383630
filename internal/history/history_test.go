package history

import (
	"testing"

	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
)

func msg(id string, kind chatModel.MessageKind, text string) chatModel.Message {
	return chatModel.Message{ID: id, Kind: kind, Content: chatModel.MessageContent{Text: text}}
}

func TestTruncateNoOp(t *testing.T) {
	messages := []chatModel.Message{
		msg("1", chatModel.KindUser, "a"),
		msg("2", chatModel.KindAssistant, "b"),
	}

	got := Truncate(messages, 5)

	if len(got) != 2 {
		t.Fatalf("expected history unchanged, got %d messages", len(got))
	}
	for i := range messages {
		if got[i].ID != messages[i].ID {
			t.Errorf("message %d reordered: %s", i, got[i].ID)
		}
	}
}

func TestTruncateKeepsSystemMessages(t *testing.T) {
	messages := []chatModel.Message{
		msg("s1", chatModel.KindSystem, "instructions"),
		msg("1", chatModel.KindUser, "q1"),
		msg("2", chatModel.KindAssistant, "a1"),
		msg("3", chatModel.KindUser, "q2"),
		msg("4", chatModel.KindAssistant, "a2"),
		msg("s2", chatModel.KindSystem, "more instructions"),
	}

	got := Truncate(messages, 2)

	if len(got) != 4 {
		t.Fatalf("expected 2 system + 2 recent, got %d", len(got))
	}
	if got[0].ID != "s1" || got[1].ID != "s2" {
		t.Errorf("system messages not first: %s, %s", got[0].ID, got[1].ID)
	}
	if got[2].ID != "3" || got[3].ID != "4" {
		t.Errorf("expected the most recent non-system tail, got %s, %s", got[2].ID, got[3].ID)
	}
}

func TestTruncateZeroBudget(t *testing.T) {
	messages := []chatModel.Message{
		msg("s1", chatModel.KindSystem, "instructions"),
		msg("1", chatModel.KindUser, "q1"),
	}

	got := Truncate(messages, 0)

	if len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("expected only the system message, got %v", got)
	}
}

func TestTruncateDoesNotMutateInput(t *testing.T) {
	messages := []chatModel.Message{
		msg("s1", chatModel.KindSystem, "instructions"),
		msg("1", chatModel.KindUser, "q1"),
		msg("2", chatModel.KindUser, "q2"),
	}

	_ = Truncate(messages, 1)

	if messages[1].ID != "1" || messages[2].ID != "2" {
		t.Error("input slice was mutated")
	}
}

func TestMergeDeduplicatesByIdentity(t *testing.T) {
	existing := []chatModel.Message{
		msg("1", chatModel.KindUser, "A"),
		msg("2", chatModel.KindAssistant, "B"),
	}
	incoming := []chatModel.Message{
		msg("2", chatModel.KindAssistant, "B"),
		msg("3", chatModel.KindUser, "C"),
	}

	got := Merge(existing, incoming)

	if len(got) != 3 {
		t.Fatalf("expected [A B C], got %d messages", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" || got[2].ID != "3" {
		t.Errorf("wrong merge order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestMergeAlwaysAppendsUnidentifiedMessages(t *testing.T) {
	existing := []chatModel.Message{
		msg("", chatModel.KindUser, "same text"),
	}
	incoming := []chatModel.Message{
		msg("", chatModel.KindUser, "same text"),
	}

	got := Merge(existing, incoming)

	if len(got) != 2 {
		t.Errorf("unidentified messages must never be deduplicated, got %d", len(got))
	}
}

func TestMergeDoesNotMutateExisting(t *testing.T) {
	existing := []chatModel.Message{msg("1", chatModel.KindUser, "A")}
	incoming := []chatModel.Message{msg("2", chatModel.KindUser, "B")}

	_ = Merge(existing, incoming)

	if len(existing) != 1 {
		t.Error("existing history was mutated")
	}
}
