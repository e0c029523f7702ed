package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/vaultpass/vaultpass-cli/internal/model"
)

const (
	labelPrefix    = "Username:"
	passwordMarker = "Password:"
)

var (
	ErrStoreRead  = errors.New("read password store")
	ErrStoreWrite = errors.New("write password store")
)

// RecordRepository keeps label/password records in a line-oriented text file.
// Each record is one line: "Username: <label> Password: <password>".
type RecordRepository struct {
	path string
}

// NewRecordRepository creates a RecordRepository backed by the file at path.
func NewRecordRepository(path string) *RecordRepository {
	return &RecordRepository{path: path}
}

// Path returns the location of the store file.
func (r *RecordRepository) Path() string {
	return r.path
}

// FormatRecord renders a record line, including the trailing newline.
func FormatRecord(label, password string) string {
	return fmt.Sprintf("%s %s %s %s\n", labelPrefix, strings.TrimSpace(label), passwordMarker, password)
}

// Upsert replaces the first record whose label matches (trimmed,
// case-insensitive) in place, or appends a new record at the end.
// It reports whether an existing record was replaced.
func (r *RecordRepository) Upsert(label, password string) (bool, error) {
	entry := FormatRecord(label, password)

	lines, err := r.readLines()
	if err != nil {
		return false, err
	}

	replaced := false
	for i, line := range lines {
		rec, ok := parseRecord(line)
		if ok && labelsEqual(rec.Label, label) {
			lines[i] = entry
			replaced = true
			break
		}
	}

	if !replaced {
		if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
			lines[n-1] += "\n"
		}
		lines = append(lines, entry)
	}

	if err := writeFileAtomic(r.path, []byte(strings.Join(lines, ""))); err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return replaced, nil
}

// List returns all records in file order. An absent or empty store yields
// an empty slice and no error.
func (r *RecordRepository) List() ([]model.PasswordRecord, error) {
	lines, err := r.readLines()
	if err != nil {
		return nil, err
	}

	records := make([]model.PasswordRecord, 0, len(lines))
	for _, line := range lines {
		if rec, ok := parseRecord(line); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Find returns the first record matching label.
func (r *RecordRepository) Find(label string) (model.PasswordRecord, bool, error) {
	records, err := r.List()
	if err != nil {
		return model.PasswordRecord{}, false, err
	}
	for _, rec := range records {
		if labelsEqual(rec.Label, label) {
			return rec, true, nil
		}
	}
	return model.PasswordRecord{}, false, nil
}

// Contents returns the raw store text with surrounding whitespace trimmed.
// An absent store yields an empty string.
func (r *RecordRepository) Contents() (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readLines returns the store's lines, each keeping its newline.
func (r *RecordRepository) readLines() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// parseRecord extracts a record from a store line. Lines that do not start
// with the label prefix are not records.
func parseRecord(line string) (model.PasswordRecord, bool) {
	line = strings.TrimRight(line, "\r\n")
	rest, ok := strings.CutPrefix(line, labelPrefix)
	if !ok {
		return model.PasswordRecord{}, false
	}

	label, password, _ := strings.Cut(rest, passwordMarker)
	return model.PasswordRecord{
		Label:    strings.TrimSpace(label),
		Password: strings.TrimPrefix(password, " "),
	}, true
}

func labelsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
