package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/vaultpass-cli/internal/crypto"
	"github.com/vaultpass/vaultpass-cli/internal/model"
)

var ErrInvalidLength = fmt.Errorf("password length must be at most %d", model.MaxLength)

// GeneratorService handles password generation business logic.
type GeneratorService struct{}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService() *GeneratorService {
	return &GeneratorService{}
}

// Generate produces a password for the policy together with its strength estimate.
func (s *GeneratorService) Generate(policy model.GenerationPolicy) (model.GenerateResponse, error) {
	password, err := crypto.Generate(policy)
	if err != nil {
		return model.GenerateResponse{}, fmt.Errorf("generate password: %w", err)
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len([]rune(password)),
		Strength: crypto.EstimateStrength(password),
	}, nil
}

// ApplyRequest overlays the fields set in req onto base.
func ApplyRequest(base model.GenerationPolicy, req model.GenerateRequest) (model.GenerationPolicy, error) {
	policy := base
	if req.Length != 0 {
		policy.Length = req.Length
	}
	policy.IncludeUppercase = boolOrDefault(req.Uppercase, base.IncludeUppercase)
	policy.IncludeLowercase = boolOrDefault(req.Lowercase, base.IncludeLowercase)
	policy.IncludeNumbers = boolOrDefault(req.Numbers, base.IncludeNumbers)
	policy.IncludeSymbols = boolOrDefault(req.Symbols, base.IncludeSymbols)
	policy.IncludeExtendedSymbols = boolOrDefault(req.ExtendedSymbols, base.IncludeExtendedSymbols)

	return NormalizePolicy(policy)
}

// NormalizePolicy clamps short lengths and rejects lengths above model.MaxLength.
func NormalizePolicy(policy model.GenerationPolicy) (model.GenerationPolicy, error) {
	if policy.Length > model.MaxLength {
		return policy, ErrInvalidLength
	}
	policy.Length = model.ClampLength(policy.Length)
	return policy, nil
}

// IsInvalidInput reports whether err is a user input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrLabelRequired) ||
		errors.Is(err, ErrLabelInvalid)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
