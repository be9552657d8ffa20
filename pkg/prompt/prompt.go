// pkg/prompt/prompt.go
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Gate asks the operator yes/no questions. It has no side effects beyond
// writing the prompt and reading one line.
type Gate struct {
	in        *bufio.Reader
	out       io.Writer
	AssumeYes bool // answer every question with yes without prompting
}

// New creates a Gate reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Gate {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Gate{in: bufio.NewReader(in), out: out}
}

// Confirm writes the prompt and reads a single line. Only "y" and "yes"
// (case-insensitive, surrounding whitespace ignored) count as approval;
// anything else, including empty input or a read error, is a refusal.
func (g *Gate) Confirm(msg string) bool {
	if g.AssumeYes {
		fmt.Fprintf(g.out, "%s [y/N] yes\n", msg)
		return true
	}

	fmt.Fprintf(g.out, "%s [y/N] ", msg)

	line, err := g.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
