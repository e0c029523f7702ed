package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

var (
	ErrSettingsLoad = errors.New("load settings")
	ErrSettingsSave = errors.New("save settings")
)

// SettingsRepository persists the generation policy as a JSON file.
type SettingsRepository struct {
	path     string
	defaults model.GenerationPolicy
}

// NewSettingsRepository creates a SettingsRepository. Keys missing from the
// file are taken from defaults.
func NewSettingsRepository(path string, defaults model.GenerationPolicy) *SettingsRepository {
	return &SettingsRepository{path: path, defaults: defaults}
}

// Path returns the location of the settings file.
func (r *SettingsRepository) Path() string {
	return r.path
}

// Defaults returns the policy used for keys absent from the file.
func (r *SettingsRepository) Defaults() model.GenerationPolicy {
	return r.defaults
}

type rawPolicy struct {
	Length                 *int  `json:"length"`
	IncludeSymbols         *bool `json:"include_symbols"`
	IncludeNumbers         *bool `json:"include_numbers"`
	IncludeUppercase       *bool `json:"include_uppercase"`
	IncludeLowercase       *bool `json:"include_lowercase"`
	IncludeExtendedSymbols *bool `json:"include_extended_symbols"`
}

// Load reads the policy, merging it over the defaults. A missing file yields
// the defaults. A corrupt file yields the defaults and an ErrSettingsLoad error.
func (r *SettingsRepository) Load() (model.GenerationPolicy, error) {
	policy := r.defaults

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return policy, nil
		}
		return policy, fmt.Errorf("%w: %w", ErrSettingsLoad, err)
	}

	var raw rawPolicy
	if err := json.Unmarshal(data, &raw); err != nil {
		return policy, fmt.Errorf("%w: parse %q: %w", ErrSettingsLoad, r.path, err)
	}

	setInt(raw.Length, &policy.Length)
	setBool(raw.IncludeSymbols, &policy.IncludeSymbols)
	setBool(raw.IncludeNumbers, &policy.IncludeNumbers)
	setBool(raw.IncludeUppercase, &policy.IncludeUppercase)
	setBool(raw.IncludeLowercase, &policy.IncludeLowercase)
	setBool(raw.IncludeExtendedSymbols, &policy.IncludeExtendedSymbols)
	policy.Length = model.ClampLength(policy.Length)

	return policy, nil
}

// Save writes the full policy with 2-space indentation.
func (r *SettingsRepository) Save(policy model.GenerationPolicy) error {
	data, err := json.MarshalIndent(policy, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSettingsSave, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSettingsSave, err)
	}
	return nil
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}
