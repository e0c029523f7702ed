package crypto

import (
	"fmt"
	"math"
	"strings"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

const (
	secondsPerYear = 365.25 * 24 * 60 * 60

	// maxScoredRunes bounds the input handed to zxcvbn. Its matchers slow
	// down sharply on long input.
	maxScoredRunes = 48
)

// EstimateStrength scores a password with zxcvbn and formats its crack time.
// Only the first maxScoredRunes runes are matched; every rune beyond that adds
// log2 of the character space the password draws from.
func EstimateStrength(password string) model.StrengthReport {
	runes := []rune(password)
	scored, rest := runes, []rune(nil)
	if len(runes) > maxScoredRunes {
		scored, rest = runes[:maxScoredRunes], runes[maxScoredRunes:]
	}

	m := zxcvbn.PasswordStrength(string(scored), nil)
	report := model.StrengthReport{
		Entropy:      m.Entropy,
		Score:        m.Score,
		CrackSeconds: m.CrackTime,
	}
	if len(rest) > 0 {
		extra := float64(len(rest)) * math.Log2(float64(charSpace(runes)))
		report.Entropy += extra
		report.CrackSeconds *= math.Pow(2, extra)
	}

	report.CrackTime = FormatCrackTime(report.CrackSeconds / secondsPerYear)
	// JSON cannot carry an infinite float.
	if math.IsInf(report.CrackSeconds, 0) {
		report.CrackSeconds = math.MaxFloat64
	}
	return report
}

// charSpace sums the sizes of the character sets password draws from.
// Runes outside every known set count once each.
func charSpace(password []rune) int {
	sets := []string{lowercaseChars, uppercaseChars, numberChars, symbolChars, extendedSymbolChars}
	used := make([]bool, len(sets))
	other := make(map[rune]struct{})

	for _, r := range password {
		known := false
		for i, set := range sets {
			if strings.ContainsRune(set, r) {
				used[i] = true
				known = true
				break
			}
		}
		if !known {
			other[r] = struct{}{}
		}
	}

	size := len(other)
	for i, set := range sets {
		if used[i] {
			size += len([]rune(set))
		}
	}
	return max(size, 2)
}

// FormatCrackTime renders a duration given in years for humans.
func FormatCrackTime(years float64) string {
	switch {
	case math.IsInf(years, 1) || math.IsNaN(years):
		return "longer than the universe will exist"
	case years < 1.0/365.25:
		return "less than a day"
	case years < 1:
		return fmt.Sprintf("%.0f days", years*365.25)
	case years < 1e3:
		return fmt.Sprintf("%.0f years", years)
	case years < 1e6:
		return fmt.Sprintf("%.1f thousand years", years/1e3)
	case years < 1e9:
		return fmt.Sprintf("%.1f million years", years/1e6)
	case years < 1e12:
		return fmt.Sprintf("%.1f billion years", years/1e9)
	case years < 1e15:
		return fmt.Sprintf("%.1f trillion years", years/1e12)
	case years < 1e18:
		return fmt.Sprintf("%.1f quadrillion years", years/1e15)
	case years < 1e21:
		return fmt.Sprintf("%.1f quintillion years", years/1e18)
	default:
		return fmt.Sprintf("%.2e years", years)
	}
}
