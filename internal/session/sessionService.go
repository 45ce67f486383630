// Package session is the conversation session service: lifecycle and
// transcript access over the relational store.
package session

import (
	"context"
	"errors"

	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/data/sqlstore"
	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
	"github.com/google/uuid"
)

type Service struct {
	store  *sqlstore.SessionStore
	logger *logger_i.Logger
}

func NewService(store *sqlstore.SessionStore) *Service {
	return &Service{
		store:  store,
		logger: logger_i.NewLogger("SessionService"),
	}
}

// Create starts a session under a fresh id.
func (s *Service) Create(ctx context.Context, userID string) (chatModel.ChatSession, error) {
	return s.store.CreateSession(ctx, uuid.NewString(), userID)
}

// CreateWithID starts a session under a caller-chosen id. Clients that
// present an unknown session id get their session recreated under it.
func (s *Service) CreateWithID(ctx context.Context, sessionID string, userID string) (chatModel.ChatSession, error) {
	return s.store.CreateSession(ctx, sessionID, userID)
}

func (s *Service) Get(ctx context.Context, sessionID string) (chatModel.ChatSession, error) {
	return s.store.GetBySessionID(ctx, sessionID)
}

// GetOrCreate resolves the session for a chat turn, recovering an
// unknown id by creating the session under it. The bool reports whether
// the session already existed.
func (s *Service) GetOrCreate(ctx context.Context, sessionID string, userID string) (chatModel.ChatSession, bool, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionID)

	existing, err := s.store.GetBySessionID(ctx, sessionID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, sqlstore.ErrSessionNotFound) {
		return chatModel.ChatSession{}, false, err
	}

	log.Info("Unknown session id, recreating session under it")
	created, err := s.store.CreateSession(ctx, sessionID, userID)
	if errors.Is(err, sqlstore.ErrSessionExists) {
		// lost a creation race; the session exists now
		existing, err = s.store.GetBySessionID(ctx, sessionID)
		return existing, true, err
	}
	return created, false, err
}

func (s *Service) LoadMessages(ctx context.Context, sessionID string) ([]chatModel.Message, error) {
	return s.store.LoadMessages(ctx, sessionID)
}

func (s *Service) SaveMessages(ctx context.Context, sessionID string, messages []chatModel.Message) error {
	return s.store.SaveMessages(ctx, sessionID, messages)
}

// TryMarkSeeded atomically claims the session's seeded flag. Exactly one
// caller per session ever observes true.
func (s *Service) TryMarkSeeded(ctx context.Context, sessionID string) (bool, error) {
	return s.store.TryMarkSeeded(ctx, sessionID)
}

// Delete removes a session and its messages. Deleting a session that
// does not exist is not an error; the bool reports whether one was found.
func (s *Service) Delete(ctx context.Context, sessionID string) (bool, error) {
	return s.store.DeleteSession(ctx, sessionID)
}
