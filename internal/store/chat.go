package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/errs"
	"estatecli/internal/model"
)

// ChatStore holds the assistant conversation. The backend creates the
// conversation lazily: a 404 from the history fetch triggers a create call
// followed by exactly one retry, and a 409 on create (another client won the
// race) falls back to the plain retry.
type ChatStore struct {
	mu  sync.Mutex
	tr  tracker
	api api.AssistantAPI
	log *zap.Logger

	messages []model.Message
}

func NewChatStore(a api.AssistantAPI, log *zap.Logger) *ChatStore {
	return &ChatStore{api: a, log: log}
}

func (s *ChatStore) Snapshot() ([]model.Message, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...), s.tr.status()
}

// LoadHistory fetches the conversation, creating it on first use.
func (s *ChatStore) LoadHistory(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	msgs, err := s.api.History(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		if cerr := s.api.CreateConversation(ctx); cerr != nil && !errors.Is(cerr, errs.ErrConflict) {
			s.mu.Lock()
			s.tr.fail(g, cerr)
			s.mu.Unlock()
			return
		}
		// One retry, created or raced; a second miss propagates.
		msgs, err = s.api.History(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		if msgs == nil {
			msgs = []model.Message{}
		}
		s.messages = msgs
	}
}

// Send appends the user's turn locally, posts it, and appends the AI reply.
func (s *ChatStore) Send(ctx context.Context, content string) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.messages = append(s.messages, model.Message{
		Index:     len(s.messages) + 1,
		Content:   content,
		Sender:    model.SenderUser,
		CreatedAt: time.Now(),
	})
	s.mu.Unlock()

	reply, err := s.api.Send(ctx, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return err
	}
	if s.tr.succeed(g) {
		s.messages = append(s.messages, reply)
	}
	return nil
}
