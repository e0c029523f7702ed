package cli

import (
	"errors"
	"fmt"

	"github.com/vaultpass/vaultpass-cli/internal/repository"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

const (
	ExitCodeSuccess = 0
	ExitCodeGeneric = 1
	ExitCodeUsage   = 2
	ExitCodeIO      = 7
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ExitError) ExitCode() int {
	if e == nil {
		return ExitCodeGeneric
	}
	return e.Code
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf(format, args...)}
}

// mapCommandError attaches an exit code to err based on its kind.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return err
	}

	switch {
	case service.IsInvalidInput(err):
		return &ExitError{Code: ExitCodeUsage, Err: err}
	case errors.Is(err, repository.ErrStoreRead),
		errors.Is(err, repository.ErrStoreWrite),
		errors.Is(err, repository.ErrSettingsSave):
		return &ExitError{Code: ExitCodeIO, Err: err}
	default:
		return &ExitError{Code: ExitCodeGeneric, Err: err}
	}
}
