// Package chat orchestrates one conversational turn: resolve the
// session, bound the history, ask the agent, persist the transcript.
package chat

import (
	"context"
	"fmt"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/internal/history"
	"github.com/akolanti/GovStackAPI/internal/pii"
	"github.com/akolanti/GovStackAPI/internal/rag/agent"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

type Sessions interface {
	Create(ctx context.Context, userID string) (chatModel.ChatSession, error)
	GetOrCreate(ctx context.Context, sessionID string, userID string) (chatModel.ChatSession, bool, error)
	LoadMessages(ctx context.Context, sessionID string) ([]chatModel.Message, error)
	SaveMessages(ctx context.Context, sessionID string, messages []chatModel.Message) error
	TryMarkSeeded(ctx context.Context, sessionID string) (bool, error)
}

type Turn struct {
	SessionID string
	Output    agent.Output
}

type Orchestrator struct {
	sessions Sessions
	provider agent.Provider
	logger   *logger_i.Logger
}

func NewOrchestrator(sessions Sessions, provider agent.Provider) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		provider: provider,
		logger:   logger_i.NewLogger("Chat"),
	}
}

// Chat runs one turn. An empty session id starts a new session; an
// unknown one is recovered by recreating the session under it.
func (o *Orchestrator) Chat(ctx context.Context, sessionID string, userID string, message string, collectionID string) (Turn, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ChatTimeout)
	defer cancel()

	log := o.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if collectionID == "" {
		collectionID = config.DefaultCollectionID
	}

	// user text never reaches storage or the model unredacted
	message = pii.Redact(message, nil)

	var sess chatModel.ChatSession
	var err error
	if sessionID == "" {
		sess, err = o.sessions.Create(ctx, userID)
	} else {
		sess, _, err = o.sessions.GetOrCreate(ctx, sessionID, userID)
	}
	if err != nil {
		return Turn{}, fmt.Errorf("resolving session: %w", err)
	}
	log = log.With("sessionId", sess.SessionID)

	loaded, err := o.sessions.LoadMessages(ctx, sess.SessionID)
	if err != nil {
		return Turn{}, fmt.Errorf("loading history: %w", err)
	}
	bounded := history.Truncate(loaded, config.MaxHistoryMessages)

	result, err := o.provider.Answer(ctx, collectionID, message, bounded)
	if err != nil {
		return Turn{}, fmt.Errorf("agent: %w", err)
	}

	seededNow, err := o.sessions.TryMarkSeeded(ctx, sess.SessionID)
	if err != nil {
		return Turn{}, fmt.Errorf("marking session seeded: %w", err)
	}

	// loaded history is already persisted, so every turn appends only
	// what it produced; the seeded claim just records the first turn
	if err := o.sessions.SaveMessages(ctx, sess.SessionID, result.NewMessages); err != nil {
		return Turn{}, fmt.Errorf("saving transcript: %w", err)
	}
	log.Info("Chat turn complete", "saved", len(result.NewMessages), "history", len(bounded), "firstTurn", seededNow)

	return Turn{SessionID: sess.SessionID, Output: result.Output}, nil
}
