// Package confirmations provides UI implementations for confirmation dialogs.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string, defaultValue bool) (bool, error)
}

// ConsoleConfirmer prompts on the terminal. On a TTY it uses pterm's
// interactive confirm, otherwise it reads one line from its input.
type ConsoleConfirmer struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewConsoleConfirmer returns a confirmer bound to stdin and stdout.
func NewConsoleConfirmer() *ConsoleConfirmer {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	return &ConsoleConfirmer{in: os.Stdin, out: os.Stdout, interactive: interactive}
}

// NewLineConfirmer returns a confirmer that reads answers line by line.
func NewLineConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{in: in, out: out}
}

// Confirm implements Confirmer
func (c *ConsoleConfirmer) Confirm(question string, defaultValue bool) (bool, error) {
	if c.interactive {
		return pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultValue).Show(question)
	}

	marker := "[y/N]"
	if defaultValue {
		marker = "[Y/n]"
	}
	if _, err := fmt.Fprintf(c.out, "%s %s: ", question, marker); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		// EOF without an answer declines; only an explicit empty line takes the default.
		if err == io.EOF {
			return false, nil
		}
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Always answers every question with Answer. It backs --yes.
type Always struct {
	Answer bool
}

// Confirm implements Confirmer
func (a Always) Confirm(string, bool) (bool, error) {
	return a.Answer, nil
}
