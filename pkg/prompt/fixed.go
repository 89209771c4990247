package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/types"
)

// Transcript is the ordered record of answers given during one run
type Transcript struct {
	lines []string
}

// Add appends one line
func (t *Transcript) Add(line string) {
	t.lines = append(t.lines, line)
}

// Lines returns a copy of the recorded lines
func (t *Transcript) Lines() []string {
	return append([]string(nil), t.lines...)
}

// String joins the lines with newlines
func (t *Transcript) String() string {
	return strings.Join(t.lines, "\n")
}

// WriteFile saves the transcript to path
func (t *Transcript) WriteFile(path string) error {
	content := t.String()
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write transcript %s", path)
	}
	return nil
}

// Fixed answers from a test case. Parameters the case does not mention
// answer nil.
type Fixed struct {
	Case       types.TestCase
	Transcript *Transcript
	// Echo receives every transcript line as it is recorded
	Echo func(line string)
}

// NewFixed creates a fixed answer source recording into a new transcript
func NewFixed(tc types.TestCase, echo func(string)) *Fixed {
	return &Fixed{Case: tc, Transcript: &Transcript{}, Echo: echo}
}

// Answer returns the case's value for p and records it
func (f *Fixed) Answer(ctx context.Context, p types.ConfigParameter) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, _ := f.Case.Lookup(p.Name)
	line := fmt.Sprintf("%s: %s", p.Prompt(), FormatValue(value))
	if f.Transcript != nil {
		f.Transcript.Add(line)
	}
	if f.Echo != nil {
		f.Echo(line)
	}
	return value, nil
}

// FormatValue renders an answer for a transcript line; lists are comma joined
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
