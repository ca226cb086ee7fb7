package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/errs"
	"estatecli/internal/model"
)

// PromptStore edits the two fixed system-prompt templates. Dirtiness is
// computed as inequality against the last-synced copy, so editing back to
// the synced value clears the flag.
type PromptStore struct {
	mu  sync.Mutex
	tr  tracker
	api api.AssistantAPI
	log *zap.Logger

	synced map[string]string
	edited map[string]string
}

func NewPromptStore(a api.AssistantAPI, log *zap.Logger) *PromptStore {
	return &PromptStore{
		api:    a,
		log:    log,
		synced: map[string]string{},
		edited: map[string]string{},
	}
}

func (s *PromptStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.status()
}

// LoadAll fetches both templates and resets local edits to the synced copies.
func (s *PromptStore) LoadAll(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	prompts, err := s.api.Prompts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if !s.tr.succeed(g) {
		return
	}
	s.synced = map[string]string{}
	s.edited = map[string]string{}
	for _, p := range prompts {
		s.synced[p.Name] = p.Content
		s.edited[p.Name] = p.Content
	}
}

// Content returns the working copy of a template.
func (s *PromptStore) Content(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edited[name]
}

// SetContent replaces the working copy.
func (s *PromptStore) SetContent(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edited[name] = content
}

// HasChanges reports whether the working copy diverges from the last-synced
// one.
func (s *PromptStore) HasChanges(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edited[name] != s.synced[name]
}

// Save persists the working copy and promotes it to the synced one.
func (s *PromptStore) Save(ctx context.Context, name string) error {
	s.mu.Lock()
	g := s.tr.begin()
	content, ok := s.edited[name]
	s.mu.Unlock()
	if !ok {
		err := fmt.Errorf("%w: unknown prompt %q", errs.ErrValidation, name)
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	if err := s.api.UpdatePrompt(ctx, model.Prompt{Name: name, Content: content}); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tr.succeed(g) {
		s.synced[name] = content
	}
	return nil
}
