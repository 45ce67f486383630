package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/internal/rag/agent"
	"github.com/akolanti/GovStackAPI/internal/rag/embedding"
	"github.com/akolanti/GovStackAPI/internal/rag/vectorDB"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type agentClient struct {
	client    *genai.Client
	modelName string
	embedder  embedding.Embedder
	vectors   vectorDB.VectorStore
}

var logger *logger_i.Logger
var geminiAgent *agentClient
var once sync.Once

func GetGeminiAgent(ctx context.Context, modelName string, apikey string, embedder embedding.Embedder, vectors vectorDB.VectorStore) agent.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("agent_gemini")
		newGeminiAgent(ctx, modelName, apikey, embedder, vectors)
	})

	if geminiAgent == nil {
		return nil
	}
	return geminiAgent
}

func newGeminiAgent(ctx context.Context, modelName string, apikey string, embedder embedding.Embedder, vectors vectorDB.VectorStore) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiAgent = &agentClient{client: c, modelName: modelName, embedder: embedder, vectors: vectors}
		logger.Info("Gemini agent created", "model", modelName)
	}
}

func (c *agentClient) Answer(ctx context.Context, namespace string, query string, history []chatModel.Message) (agent.Result, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	queryVector, err := c.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return agent.Result{}, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := c.vectors.Query(ctx, namespace, queryVector, uint64(config.RetrievalTopK))
	if err != nil {
		return agent.Result{}, fmt.Errorf("retrieving context: %w", err)
	}
	log.Debug("Retrieved context", "hits", len(hits))

	userPrompt := buildPrompt(query, hits, history)

	temperature := config.ModelTemperature
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: config.SystemPrompt}},
			},
			Temperature: &temperature,
		},
	)
	if err != nil {
		return agent.Result{}, fmt.Errorf("generating answer: %w", err)
	}

	answer := result.Text()
	now := time.Now().UTC()

	output := agent.Output{
		Answer:        answer,
		Sources:       collectSources(hits),
		Confidence:    topScore(hits),
		RetrieverType: "vector",
	}

	return agent.Result{
		Output: output,
		NewMessages: []chatModel.Message{
			{Kind: chatModel.KindUser, Content: chatModel.MessageContent{Text: query}, Timestamp: now},
			{Kind: chatModel.KindAssistant, Content: chatModel.MessageContent{Text: answer, Sources: output.Sources}, Timestamp: now},
		},
	}, nil
}

func buildPrompt(query string, hits []vectorDB.Hit, history []chatModel.Message) string {
	var b strings.Builder

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range history {
			b.WriteString(string(m.Kind))
			b.WriteString(": ")
			b.WriteString(m.Content.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Context:\n")
	for _, hit := range hits {
		fmt.Fprintf(&b, "[%s](%s)\n%s\n\n", hit.Title, hit.URL, hit.Content)
	}

	fmt.Fprintf(&b, "User Question: %s", query)
	return b.String()
}

func collectSources(hits []vectorDB.Hit) []chatModel.Source {
	var sources []chatModel.Source
	seen := make(map[string]bool)
	for _, hit := range hits {
		if hit.URL == "" || seen[hit.URL] {
			continue
		}
		seen[hit.URL] = true
		sources = append(sources, chatModel.Source{Title: hit.Title, URL: hit.URL})
	}
	return sources
}

func topScore(hits []vectorDB.Hit) float64 {
	if len(hits) == 0 {
		return 0
	}
	return float64(hits[0].Score)
}
