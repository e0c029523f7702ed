package service

import (
	"log/slog"
	"sync"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

// SettingsStore loads and saves the generation policy.
type SettingsStore interface {
	Load() (model.GenerationPolicy, error)
	Save(model.GenerationPolicy) error
	Path() string
}

// SettingsService holds the process-wide generation policy. It is loaded once
// and written back on every change and on exit.
type SettingsService struct {
	mu     sync.RWMutex
	store  SettingsStore
	policy model.GenerationPolicy
}

// NewSettingsService loads the policy from store. A load failure is logged
// and the defaults returned by the store are used.
func NewSettingsService(store SettingsStore) *SettingsService {
	policy, err := store.Load()
	if err != nil {
		slog.Warn("settings unreadable, using defaults", "path", store.Path(), "error", err)
	}
	return &SettingsService{store: store, policy: policy}
}

// Policy returns the current policy.
func (s *SettingsService) Policy() model.GenerationPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Update validates and replaces the current policy, then flushes it.
// The in-memory policy changes even if the flush fails.
func (s *SettingsService) Update(policy model.GenerationPolicy) (model.GenerationPolicy, error) {
	policy, err := NormalizePolicy(policy)
	if err != nil {
		return s.Policy(), err
	}

	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()

	return policy, s.Flush()
}

// Flush writes the current policy to disk.
func (s *SettingsService) Flush() error {
	s.mu.RLock()
	policy := s.policy
	s.mu.RUnlock()

	if err := s.store.Save(policy); err != nil {
		slog.Warn("settings flush failed", "path", s.store.Path(), "error", err)
		return err
	}
	slog.Debug("settings flushed", "path", s.store.Path())
	return nil
}
