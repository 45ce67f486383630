package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrSessionExists   = errors.New("chat session already exists")
	ErrOrdinalConflict = errors.New("message ordinal conflict")
)

// SessionStore persists chat sessions and their append-only message
// logs. Ordinals are assigned inside the save transaction and backed by
// the (session_id, message_idx) primary key, so two racing appends on
// one session cannot interleave or leave gaps.
type SessionStore struct {
	store  *Store
	logger *logger_i.Logger
}

func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, userID string) (chatModel.ChatSession, error) {
	now := time.Now().UTC()
	session := chatModel.ChatSession{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, user_id, seeded, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)`,
		sessionID, userID, now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return session, ErrSessionExists
		}
		return session, fmt.Errorf("creating session %s: %w", sessionID, err)
	}

	s.logger.Debug("Created chat session", "sessionId", sessionID)
	return session, nil
}

func (s *SessionStore) GetBySessionID(ctx context.Context, sessionID string) (chatModel.ChatSession, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT session_id, user_id, seeded, created_at, updated_at
		FROM chat_sessions WHERE session_id = ?`, sessionID)

	var session chatModel.ChatSession
	var seeded int
	var createdAt, updatedAt string
	err := row.Scan(&session.SessionID, &session.UserID, &seeded, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return session, ErrSessionNotFound
	}
	if err != nil {
		return session, fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	session.Seeded = seeded == 1
	session.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	session.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
	return session, nil
}

// LoadMessages returns the session's log ordered by ordinal. Malformed
// stored payloads come back as plain-text wrappers, never as errors.
func (s *SessionStore) LoadMessages(ctx context.Context, sessionID string) ([]chatModel.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT message_id, message_type, content, message_idx, timestamp, metadata
		FROM chat_messages WHERE session_id = ? ORDER BY message_idx`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading messages for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var messages []chatModel.Message
	for rows.Next() {
		var msg chatModel.Message
		var kind, content, timestamp, metadata string
		if err := rows.Scan(&msg.ID, &kind, &content, &msg.Ordinal, &timestamp, &metadata); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Kind = chatModel.MessageKind(kind)
		msg.Content = chatModel.ParseContent(content)
		msg.Timestamp, _ = time.Parse(timeFormat, timestamp)
		if metadata != "" {
			_ = json.Unmarshal([]byte(metadata), &msg.Metadata)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// SaveMessages appends messages to the session's log. The next ordinal
// is computed inside the transaction (max existing + 1); the primary
// key rejects any concurrent append that would break continuity.
func (s *SessionStore) SaveMessages(ctx context.Context, sessionID string, messages []chatModel.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_sessions WHERE session_id = ?`, sessionID).Scan(&exists); err != nil {
		return fmt.Errorf("checking session %s: %w", sessionID, err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(message_idx) + 1, 0) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&next); err != nil {
		return fmt.Errorf("computing next ordinal: %w", err)
	}

	now := time.Now().UTC()
	for i, msg := range messages {
		timestamp := msg.Timestamp
		if timestamp.IsZero() {
			timestamp = now
		}
		metadata := ""
		if len(msg.Metadata) > 0 {
			data, _ := json.Marshal(msg.Metadata)
			metadata = string(data)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO chat_messages (session_id, message_idx, message_id, message_type, content, timestamp, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sessionID, next+i, msg.ID, string(msg.Kind), msg.Content.Serialize(),
			timestamp.Format(timeFormat), metadata)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrOrdinalConflict
			}
			return fmt.Errorf("inserting message %d: %w", next+i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = ? WHERE session_id = ?`,
		now.Format(timeFormat), sessionID); err != nil {
		return fmt.Errorf("touching session %s: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrOrdinalConflict
		}
		return fmt.Errorf("committing messages: %w", err)
	}

	s.logger.Debug("Saved messages", "sessionId", sessionID, "count", len(messages), "firstOrdinal", next)
	return nil
}

// TryMarkSeeded atomically flips the session's seeded flag. Exactly one
// caller ever observes true.
func (s *SessionStore) TryMarkSeeded(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.store.db.ExecContext(ctx,
		`UPDATE chat_sessions SET seeded = 1 WHERE session_id = ? AND seeded = 0`, sessionID)
	if err != nil {
		return false, fmt.Errorf("marking session %s seeded: %w", sessionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// DeleteSession removes the session and, via the cascade, its messages.
// A missing session reports false without an error.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.store.db.ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return false, fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	//modernc.org/sqlite reports constraint failures by message
	return strings.Contains(err.Error(), "constraint failed")
}
