// Package viewer opens the password store in the platform text viewer.
package viewer

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Opener shows a file to the user. When launching is disabled or fails it
// prints the file path instead.
type Opener struct {
	out     io.Writer
	enabled bool
	command func(path string) *exec.Cmd
}

// New returns an Opener that writes its fallback to out. Launching is only
// attempted when enabled and the platform has a known viewer.
func New(out io.Writer, enabled bool) *Opener {
	return &Opener{out: out, enabled: enabled, command: platformCommand()}
}

// DefaultEnabled reports whether the viewer is launched unless configured otherwise.
func DefaultEnabled() bool {
	return runtime.GOOS == "windows"
}

// Open launches the viewer without waiting for it to exit.
func (o *Opener) Open(path string) error {
	if !o.enabled || o.command == nil {
		o.printPath(path)
		return nil
	}

	if err := o.command(path).Start(); err != nil {
		o.printPath(path)
		return fmt.Errorf("start viewer: %w", err)
	}
	return nil
}

func (o *Opener) printPath(path string) {
	fmt.Fprintf(o.out, "File: %s\n", path)
}

func platformCommand() func(string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return func(path string) *exec.Cmd {
			return exec.Command("notepad.exe", path)
		}
	}
	return nil
}
