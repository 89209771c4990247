package output_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/arthur-debert/morph/pkg/ui"
	"github.com/arthur-debert/morph/pkg/ui/output"
	"github.com/stretchr/testify/assert"
)

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, ui.FormatAuto)

	p.Header("=== TESTING CASE 1 OF 2 ===")
	p.Error(fmt.Errorf("boom"))
	p.Path("Saved at", "/tmp/test1")
	p.Printf("  %s: %v", "Docker", true)

	assert.False(t, p.Styled())
	assert.Equal(t, "=== TESTING CASE 1 OF 2 ===\nError: boom\nSaved at /tmp/test1\n  Docker: true\n", buf.String())
}

func TestPrinterStyledKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := output.New(&buf, ui.FormatTerminal)

	p.Success("Project created")

	assert.True(t, p.Styled())
	assert.Contains(t, buf.String(), "Project created")
}
