package service

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

var (
	ErrLabelRequired = errors.New("label required")
	ErrLabelInvalid  = errors.New("label must be a single line")
)

// RecordStore is the label-indexed password store.
type RecordStore interface {
	Upsert(label, password string) (bool, error)
	List() ([]model.PasswordRecord, error)
	Find(label string) (model.PasswordRecord, bool, error)
	Contents() (string, error)
	Path() string
}

// Viewer opens the store file for the user. Failures are never fatal.
type Viewer interface {
	Open(path string) error
}

// PasswordService generates passwords and keeps them in the record store.
type PasswordService struct {
	mu        sync.Mutex
	generator *GeneratorService
	settings  *SettingsService
	records   RecordStore
	viewer    Viewer
}

// NewPasswordService creates a new PasswordService. viewer may be nil.
func NewPasswordService(gen *GeneratorService, settings *SettingsService, records RecordStore, viewer Viewer) *PasswordService {
	return &PasswordService{
		generator: gen,
		settings:  settings,
		records:   records,
		viewer:    viewer,
	}
}

// NormalizeLabel trims the label and rejects empty or multi-line labels.
func NormalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrLabelRequired
	}
	if strings.ContainsAny(label, "\r\n") {
		return "", ErrLabelInvalid
	}
	return label, nil
}

// GenerateFor generates a password with the current policy and stores it under label.
func (s *PasswordService) GenerateFor(label string) (model.RecordResponse, error) {
	return s.GenerateWith(label, s.settings.Policy())
}

// GenerateWith generates a password with policy and stores it under label.
// The password is not stored when the store update fails.
func (s *PasswordService) GenerateWith(label string, policy model.GenerationPolicy) (model.RecordResponse, error) {
	label, err := NormalizeLabel(label)
	if err != nil {
		return model.RecordResponse{}, err
	}

	gen, err := s.generator.Generate(policy)
	if err != nil {
		return model.RecordResponse{}, err
	}

	if err := s.Store(label, gen.Password); err != nil {
		return model.RecordResponse{}, err
	}

	return model.RecordResponse{
		Label:    label,
		Password: gen.Password,
		Strength: gen.Strength,
	}, nil
}

// Store upserts the record and asks the viewer to show the store file.
func (s *PasswordService) Store(label, password string) error {
	label, err := NormalizeLabel(label)
	if err != nil {
		return err
	}

	s.mu.Lock()
	replaced, err := s.records.Upsert(label, password)
	s.mu.Unlock()
	if err != nil {
		slog.Error("store update failed", "label", label, "error", err)
		return err
	}
	slog.Info("password stored", "label", label, "replaced", replaced)

	if s.viewer != nil {
		if err := s.viewer.Open(s.records.Path()); err != nil {
			slog.Warn("viewer unavailable", "path", s.records.Path(), "error", err)
		}
	}
	return nil
}

// List returns all stored records in file order.
func (s *PasswordService) List() ([]model.PasswordRecord, error) {
	return s.records.List()
}

// Find returns the record stored under label, matched case-insensitively.
func (s *PasswordService) Find(label string) (model.PasswordRecord, bool, error) {
	label, err := NormalizeLabel(label)
	if err != nil {
		return model.PasswordRecord{}, false, err
	}
	return s.records.Find(label)
}

// View returns the store's text, or an empty string when nothing is saved.
func (s *PasswordService) View() (string, error) {
	return s.records.Contents()
}

// StorePath returns the location of the store file.
func (s *PasswordService) StorePath() string {
	return s.records.Path()
}
