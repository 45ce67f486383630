package agent

import (
	"context"

	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
)

// Output is the structured answer surfaced to the client.
type Output struct {
	Answer        string             `json:"answer"`
	Sources       []chatModel.Source `json:"sources"`
	Confidence    float64            `json:"confidence"`
	RetrieverType string             `json:"retriever_type"`
}

// Result pairs the answer with the messages this turn produced, in
// order, so the caller can append them to the session transcript.
type Result struct {
	Output      Output
	NewMessages []chatModel.Message
}

type Provider interface {
	Answer(ctx context.Context, namespace string, query string, history []chatModel.Message) (Result, error)
}
