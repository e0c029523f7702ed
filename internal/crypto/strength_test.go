package crypto

import (
	"math"
	"testing"
	"time"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

func TestFormatCrackTime(t *testing.T) {
	tests := []struct {
		years float64
		want  string
	}{
		{0, "less than a day"},
		{0.5, "183 days"},
		{42, "42 years"},
		{2500, "2.5 thousand years"},
		{3e6, "3.0 million years"},
		{4.5e9, "4.5 billion years"},
		{1.2e12, "1.2 trillion years"},
		{7e15, "7.0 quadrillion years"},
		{2e18, "2.0 quintillion years"},
		{3.4e25, "3.40e+25 years"},
		{math.Inf(1), "longer than the universe will exist"},
	}

	for _, tt := range tests {
		if got := FormatCrackTime(tt.years); got != tt.want {
			t.Errorf("FormatCrackTime(%g) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestEstimateStrengthRanksGeneratedAboveTrivial(t *testing.T) {
	weak := EstimateStrength("password")

	password, err := Generate(allEnabled(18))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	strong := EstimateStrength(password)

	if strong.Entropy <= weak.Entropy {
		t.Errorf("generated entropy %.1f should exceed %.1f", strong.Entropy, weak.Entropy)
	}
	if strong.Score < weak.Score {
		t.Errorf("generated score %d below trivial password score %d", strong.Score, weak.Score)
	}
	if strong.CrackTime == "" {
		t.Error("EstimateStrength() returned empty crack time")
	}
}

func TestEstimateStrengthLongPasswordIsFast(t *testing.T) {
	password, err := Generate(allEnabled(model.MaxLength))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	start := time.Now()
	report := EstimateStrength(password)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("EstimateStrength() on %d runes took %v, want under 100ms", model.MaxLength, elapsed)
	}

	prefix := EstimateStrength(string([]rune(password)[:maxScoredRunes]))
	if report.Entropy <= prefix.Entropy {
		t.Errorf("Entropy = %.1f, want more than the %d-rune prefix's %.1f", report.Entropy, maxScoredRunes, prefix.Entropy)
	}
	if report.CrackSeconds < prefix.CrackSeconds {
		t.Errorf("CrackSeconds = %g, want at least %g", report.CrackSeconds, prefix.CrackSeconds)
	}
	if math.IsInf(report.CrackSeconds, 0) {
		t.Error("CrackSeconds must stay finite")
	}
}

func TestCharSpace(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"abc", 26},
		{"aB3", 62},
		{"a!§", 26 + len([]rune(symbolChars)) + len([]rune(extendedSymbolChars))},
		{"aé", 27},
		{"", 2},
	}

	for _, tt := range tests {
		if got := charSpace([]rune(tt.password)); got != tt.want {
			t.Errorf("charSpace(%q) = %d, want %d", tt.password, got, tt.want)
		}
	}
}
