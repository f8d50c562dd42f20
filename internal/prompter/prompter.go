package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive input. Prompts are written to stderr so they
// never leak into a command stream captured by eval.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New creates a new Prompter reading stdin and prompting on stderr
func New() *Prompter {
	return &Prompter{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stderr,
	}
}

// PromptString prompts for a string input with an optional default value
func (p *Prompter) PromptString(prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	input, err := p.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// PromptSecret prompts for a secret without echoing it. When stdin is not a
// terminal it falls back to a plain line read.
func (p *Prompter) PromptSecret(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secretBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return string(secretBytes), nil
	}

	input, err := p.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// PromptConfirm prompts for a yes/no confirmation
func (p *Prompter) PromptConfirm(prompt string, defaultYes bool) (bool, error) {
	var hint string
	if defaultYes {
		hint = "[Y/n]"
	} else {
		hint = "[y/N]"
	}

	fmt.Fprintf(p.out, "%s %s: ", prompt, hint)

	input, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultYes, nil
	}

	switch input {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid input: %s (expected y/n)", input)
	}
}

// Package-level convenience functions using a default Prompter

var defaultPrompter = New()

// String prompts for a string input
func String(prompt, defaultValue string) (string, error) {
	return defaultPrompter.PromptString(prompt, defaultValue)
}

// Secret prompts for a secret without echo
func Secret(prompt string) (string, error) {
	return defaultPrompter.PromptSecret(prompt)
}

// Confirm prompts for yes/no confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	return defaultPrompter.PromptConfirm(prompt, defaultYes)
}
