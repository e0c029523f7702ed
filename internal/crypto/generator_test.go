package crypto

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

func allEnabled(length int) model.GenerationPolicy {
	return model.DefaultPolicy(length)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		policy     model.GenerationPolicy
		wantLength int
	}{
		{
			name:       "default policy",
			policy:     allEnabled(18),
			wantLength: 18,
		},
		{
			name:       "minimum length",
			policy:     allEnabled(model.MinLength),
			wantLength: model.MinLength,
		},
		{
			name:       "long password",
			policy:     allEnabled(model.MaxLength),
			wantLength: model.MaxLength,
		},
		{
			name:       "length below minimum is clamped",
			policy:     model.GenerationPolicy{Length: 4, IncludeLowercase: true},
			wantLength: model.MinLength,
		},
		{
			name:       "zero length is clamped",
			policy:     model.GenerationPolicy{IncludeNumbers: true},
			wantLength: model.MinLength,
		},
		{
			name:       "extended symbols only",
			policy:     model.GenerationPolicy{Length: 20, IncludeExtendedSymbols: true},
			wantLength: 20,
		},
		{
			name:       "no categories falls back",
			policy:     model.GenerationPolicy{Length: 16},
			wantLength: 16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.policy)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if got := utf8.RuneCountInString(result); got != tt.wantLength {
				t.Errorf("Generate() length = %d, want %d", got, tt.wantLength)
			}
		})
	}
}

func TestGenerateContainsRequiredTypes(t *testing.T) {
	policy := allEnabled(model.MinLength)

	// Run multiple times to reduce flakiness from randomness.
	for i := 0; i < 200; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}

		for _, pool := range Pools(policy) {
			if !strings.ContainsAny(password, string(pool.Chars)) {
				t.Errorf("password %q missing %s character", password, pool.Category)
			}
		}
	}
}

func TestGenerateSingleTypeContainsOnlyThatType(t *testing.T) {
	tests := []struct {
		name    string
		policy  model.GenerationPolicy
		charset string
	}{
		{
			name:    "uppercase only",
			policy:  model.GenerationPolicy{Length: 32, IncludeUppercase: true},
			charset: uppercaseChars,
		},
		{
			name:    "lowercase only",
			policy:  model.GenerationPolicy{Length: 32, IncludeLowercase: true},
			charset: lowercaseChars,
		},
		{
			name:    "numbers only",
			policy:  model.GenerationPolicy{Length: 32, IncludeNumbers: true},
			charset: numberChars,
		},
		{
			name:    "symbols only",
			policy:  model.GenerationPolicy{Length: 32, IncludeSymbols: true},
			charset: symbolChars,
		},
		{
			name:    "extended symbols only",
			policy:  model.GenerationPolicy{Length: 32, IncludeExtendedSymbols: true},
			charset: extendedSymbolChars,
		},
		{
			name:    "nothing enabled uses alphanumeric fallback",
			policy:  model.GenerationPolicy{Length: 32},
			charset: fallbackChars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := Generate(tt.policy)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, ch := range password {
				if !strings.ContainsRune(tt.charset, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), tt.charset)
				}
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	policy := allEnabled(18)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestPoolsAreDisjoint(t *testing.T) {
	pools := Pools(allEnabled(18))
	if len(pools) != 5 {
		t.Fatalf("Pools() returned %d pools, want 5", len(pools))
	}

	owner := make(map[rune]Category)
	for _, pool := range pools {
		if len(pool.Chars) == 0 {
			t.Errorf("pool %s is empty", pool.Category)
		}
		for _, ch := range pool.Chars {
			if prev, ok := owner[ch]; ok && prev != pool.Category {
				t.Errorf("character %q in both %s and %s", string(ch), prev, pool.Category)
			}
			owner[ch] = pool.Category
		}
	}
}

func TestPickRequiredTruncatesToLength(t *testing.T) {
	pools := Pools(allEnabled(18))

	got, err := pickRequired(strings.NewReader(strings.Repeat("\x00", 64)), pools, 2)
	if err != nil {
		t.Fatalf("pickRequired() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("pickRequired() returned %d characters, want 2", len(got))
	}
	for i, ch := range got {
		if !strings.ContainsRune(string(pools[i].Chars), ch) {
			t.Errorf("character %d = %q, want one from %s", i, string(ch), pools[i].Category)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestGenerateRandomSourceFailure(t *testing.T) {
	result, err := generate(failingReader{}, allEnabled(18))
	if err == nil {
		t.Fatal("generate() expected error when the random source fails")
	}
	if result != "" {
		t.Error("generate() should return empty string on error")
	}
}
