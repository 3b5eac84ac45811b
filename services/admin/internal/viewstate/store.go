// Package viewstate persists per-view admin UI state (selection set, inline
// edit session) between requests. Views are identified by a client-generated
// uuid; entries expire so abandoned views clean themselves up.
package viewstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pressroom/services/admin/internal/editsession"
	"pressroom/services/admin/internal/selection"

	"github.com/redis/go-redis/v9"
)

type Store interface {
	Selection(viewID, list string) (*selection.State, error)
	SaveSelection(viewID, list string, state *selection.State) error
	EditSession(viewID string) (*editsession.Session, error)
	SaveEditSession(viewID string, session *editsession.Session) error
	ClearEditSession(viewID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func selectionKey(viewID, list string) string {
	return fmt.Sprintf("view:%s:selection:%s", viewID, list)
}

func editKey(viewID string) string {
	return fmt.Sprintf("view:%s:edit", viewID)
}

// Selection loads the view's selection state, starting empty for new views.
func (s *redisStore) Selection(viewID, list string) (*selection.State, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, selectionKey(viewID, list)).Bytes()
	if err == redis.Nil {
		return selection.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	var snap selection.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt state is not worth failing a request over; start fresh.
		return selection.NewState(), nil
	}
	return selection.Restore(snap), nil
}

func (s *redisStore) SaveSelection(viewID, list string, state *selection.State) error {
	data, err := json.Marshal(state.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, selectionKey(viewID, list), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// EditSession returns the view's active edit session, or nil when none exists.
func (s *redisStore) EditSession(viewID string) (*editsession.Session, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, editKey(viewID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load edit session: %w", err)
	}

	var session editsession.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// SaveEditSession overwrites any previous session; a view holds at most one
// edit at a time, so starting a new edit abandons the old one unpersisted.
func (s *redisStore) SaveEditSession(viewID string, session *editsession.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal edit session: %w", err)
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, editKey(viewID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save edit session: %w", err)
	}
	return nil
}

func (s *redisStore) ClearEditSession(viewID string) error {
	ctx := context.Background()
	return s.client.Del(ctx, editKey(viewID)).Err()
}
