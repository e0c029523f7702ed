package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> saved policy) and explicit false.
type GenerateRequest struct {
	Length          int   `json:"length"`
	Uppercase       *bool `json:"uppercase"`
	Lowercase       *bool `json:"lowercase"`
	Numbers         *bool `json:"numbers"`
	Symbols         *bool `json:"symbols"`
	ExtendedSymbols *bool `json:"extended_symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string         `json:"password"`
	Length   int            `json:"length"`
	Strength StrengthReport `json:"strength"`
}

// RecordResponse is returned after a label has been stored or updated.
type RecordResponse struct {
	Label    string         `json:"label"`
	Password string         `json:"password"`
	Strength StrengthReport `json:"strength"`
}
