package model

const (
	// MinLength is the shortest password the generator will produce.
	MinLength = 12
	// MaxLength bounds user-supplied lengths in settings and API input.
	MaxLength = 128
)

// GenerationPolicy is the user's preferred password generation policy.
// It is persisted as the settings file.
type GenerationPolicy struct {
	Length                 int  `json:"length"`
	IncludeSymbols         bool `json:"include_symbols"`
	IncludeNumbers         bool `json:"include_numbers"`
	IncludeUppercase       bool `json:"include_uppercase"`
	IncludeLowercase       bool `json:"include_lowercase"`
	IncludeExtendedSymbols bool `json:"include_extended_symbols"`
}

// DefaultPolicy returns a policy of the given length with every category enabled.
func DefaultPolicy(length int) GenerationPolicy {
	return GenerationPolicy{
		Length:                 ClampLength(length),
		IncludeSymbols:         true,
		IncludeNumbers:         true,
		IncludeUppercase:       true,
		IncludeLowercase:       true,
		IncludeExtendedSymbols: true,
	}
}

// ClampLength raises n to MinLength when it is shorter.
func ClampLength(n int) int {
	if n < MinLength {
		return MinLength
	}
	return n
}
