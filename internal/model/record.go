package model

// PasswordRecord is one label/password pair from the store file.
type PasswordRecord struct {
	Label    string `json:"label"`
	Password string `json:"password"`
}

// StrengthReport summarizes the estimated strength of a generated password.
type StrengthReport struct {
	Entropy      float64 `json:"entropy_bits"`
	Score        int     `json:"score"`
	CrackSeconds float64 `json:"crack_seconds"`
	CrackTime    string  `json:"crack_time"`
}
