package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaultpass/vaultpass-cli/internal/model"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

// errQuit ends the menu: end of input or an interrupt.
var errQuit = errors.New("quit")

type menu struct {
	ctx       context.Context
	lines     <-chan string
	out       io.Writer
	passwords *service.PasswordService
	settings  *service.SettingsService
}

// RunMenu runs the interactive menu until the user exits, input ends, or ctx
// is cancelled. Settings are flushed on every way out.
func RunMenu(ctx context.Context, in io.Reader, out io.Writer, passwords *service.PasswordService, settings *service.SettingsService) error {
	done := make(chan struct{})
	defer close(done)

	m := &menu{
		ctx:       ctx,
		lines:     scanLines(in, done),
		out:       out,
		passwords: passwords,
		settings:  settings,
	}

	fmt.Fprintln(out, "Password Generator & Manager")
	fmt.Fprintln(out, strings.Repeat("=", 30))

	err := m.loop()
	if flushErr := settings.Flush(); flushErr != nil {
		fmt.Fprintf(out, "Warning: %v\n", flushErr)
	}
	if errors.Is(err, errQuit) {
		fmt.Fprintln(out, "\nGoodbye!")
		return nil
	}
	return err
}

func (m *menu) loop() error {
	for {
		fmt.Fprintln(m.out, "\n1. Generate password")
		fmt.Fprintln(m.out, "2. View passwords")
		fmt.Fprintln(m.out, "3. Update password")
		fmt.Fprintln(m.out, "4. Settings")
		fmt.Fprintln(m.out, "5. Exit")

		choice, err := m.prompt("\nChoice (1-5): ")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1", "3":
			if err := m.generate("Password for: ", true); err != nil {
				return err
			}
		case "2":
			m.view()
		case "4":
			if err := m.changeSettings(); err != nil {
				return err
			}
		case "5":
			return errQuit
		default:
			fmt.Fprintln(m.out, "Invalid choice!")
		}
	}
}

// generate asks for a label, then generates and stores a password for it.
// With labelRequired unset an empty label silently skips generation.
func (m *menu) generate(question string, labelRequired bool) error {
	label, err := m.prompt(question)
	if err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		if labelRequired {
			fmt.Fprintln(m.out, "Label required!")
		}
		return nil
	}

	resp, err := m.passwords.GenerateFor(label)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(m.out, "\nPassword: %s\n", resp.Password)
	printStrength(m.out, resp.Strength)
	if err := m.settings.Flush(); err != nil {
		fmt.Fprintf(m.out, "Warning: %v\n", err)
	}
	return nil
}

func (m *menu) view() {
	text, err := m.passwords.View()
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if text == "" {
		fmt.Fprintln(m.out, "No passwords saved yet!")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(m.out, "\n%s\n%s\n%s\n", rule, text, rule)
}

func (m *menu) changeSettings() error {
	current := m.settings.Policy()
	fmt.Fprintf(m.out, "\nCurrent length: %d\n", current.Length)

	answer, err := m.prompt(fmt.Sprintf("Length (min %d): ", model.MinLength))
	if err != nil {
		return err
	}
	length := current.Length
	if answer = strings.TrimSpace(answer); answer != "" {
		length, err = strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input!")
			return nil
		}
	}

	policy := model.GenerationPolicy{Length: length}
	for _, q := range []struct {
		question string
		dst      *bool
	}{
		{"Basic symbols (y/n): ", &policy.IncludeSymbols},
		{"Numbers (y/n): ", &policy.IncludeNumbers},
		{"Uppercase (y/n): ", &policy.IncludeUppercase},
		{"Lowercase (y/n): ", &policy.IncludeLowercase},
		{"Extended symbols (y/n): ", &policy.IncludeExtendedSymbols},
	} {
		answer, err := m.prompt(q.question)
		if err != nil {
			return err
		}
		*q.dst = parseYesDefault(answer)
	}

	if _, err := m.settings.Update(policy); err != nil {
		if service.IsInvalidInput(err) {
			fmt.Fprintln(m.out, "Invalid input!")
			return nil
		}
		fmt.Fprintf(m.out, "Warning: %v\n", err)
	} else {
		fmt.Fprintln(m.out, "Settings saved!")
	}

	return m.generate("Generate password for: ", false)
}

// prompt writes question and waits for one line of input.
func (m *menu) prompt(question string) (string, error) {
	fmt.Fprint(m.out, question)
	select {
	case <-m.ctx.Done():
		return "", errQuit
	case line, ok := <-m.lines:
		if !ok {
			return "", errQuit
		}
		return line, nil
	}
}

// parseYesDefault treats anything other than "n" as yes.
func parseYesDefault(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) != "n"
}

func printStrength(out io.Writer, s model.StrengthReport) {
	fmt.Fprintf(out, "Strength: %d/4, %.0f bits, crack time %s\n", s.Score, s.Entropy, s.CrackTime)
}

// scanLines feeds lines from r until it is exhausted or done is closed.
func scanLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
