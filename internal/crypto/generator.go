package crypto

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?~`"

	// extendedSymbolChars shares no character with symbolChars.
	extendedSymbolChars = `"'/\§±¶°µ×÷€£¥¢¤¬`

	fallbackChars = uppercaseChars + lowercaseChars + numberChars
)

// Category names a class of characters usable in a password.
type Category string

const (
	CategoryLowercase       Category = "lowercase"
	CategoryUppercase       Category = "uppercase"
	CategoryNumbers         Category = "numbers"
	CategorySymbols         Category = "symbols"
	CategoryExtendedSymbols Category = "extended_symbols"
	CategoryFallback        Category = "alphanumeric"
)

// CharacterPool is the ordered, non-empty set of characters of one category.
type CharacterPool struct {
	Category Category
	Chars    []rune
}

// Pools returns one pool per category enabled in p, in a fixed order.
// When no category is enabled a single alphanumeric pool is returned.
func Pools(p model.GenerationPolicy) []CharacterPool {
	var pools []CharacterPool
	add := func(enabled bool, c Category, chars string) {
		if enabled {
			pools = append(pools, CharacterPool{Category: c, Chars: []rune(chars)})
		}
	}

	add(p.IncludeLowercase, CategoryLowercase, lowercaseChars)
	add(p.IncludeUppercase, CategoryUppercase, uppercaseChars)
	add(p.IncludeNumbers, CategoryNumbers, numberChars)
	add(p.IncludeSymbols, CategorySymbols, symbolChars)
	add(p.IncludeExtendedSymbols, CategoryExtendedSymbols, extendedSymbolChars)

	if len(pools) == 0 {
		pools = append(pools, CharacterPool{Category: CategoryFallback, Chars: []rune(fallbackChars)})
	}
	return pools
}

// Generate creates a cryptographically secure random password from the policy.
// Lengths below model.MinLength are raised to it. Every enabled category
// contributes at least one character.
func Generate(p model.GenerationPolicy) (string, error) {
	return generate(rand.Reader, p)
}

func generate(rnd io.Reader, p model.GenerationPolicy) (string, error) {
	length := model.ClampLength(p.Length)
	pools := Pools(p)

	var all []rune
	for _, pool := range pools {
		all = append(all, pool.Chars...)
	}

	result, err := pickRequired(rnd, pools, length)
	if err != nil {
		return "", err
	}

	// Fill the remaining positions from the union of all pools.
	for len(result) < length {
		ch, err := randChar(rnd, all)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := secureShuffle(rnd, result); err != nil {
		return "", err
	}

	return string(result), nil
}

// pickRequired draws one character per pool, in pool order. If there are
// more pools than positions, the later pools are dropped.
func pickRequired(rnd io.Reader, pools []CharacterPool, length int) ([]rune, error) {
	result := make([]rune, 0, length)
	for _, pool := range pools {
		if len(result) == length {
			break
		}
		ch, err := randChar(rnd, pool.Chars)
		if err != nil {
			return nil, err
		}
		result = append(result, ch)
	}
	return result, nil
}

// randChar picks a uniformly random character from charset.
func randChar(rnd io.Reader, charset []rune) (rune, error) {
	n, err := rand.Int(rnd, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle driven by rnd.
func secureShuffle(rnd io.Reader, data []rune) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rnd, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
