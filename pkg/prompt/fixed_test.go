package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/morph/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedAnswersAndRecords(t *testing.T) {
	var echoed []string
	f := NewFixed(types.TestCase{
		"type":     "default",
		"features": []string{"cli", "orm"},
		"docker":   true,
	}, func(line string) { echoed = append(echoed, line) })

	ctx := context.Background()
	params := []types.ConfigParameter{
		{Name: "type", Description: "Template type", Type: types.TypeRadio},
		{Name: "features", Description: "Features", Type: types.TypeCheckbox},
		{Name: "docker", Type: types.TypeConfirm},
		{Name: "port", Description: "Port", Type: types.TypeNumber},
	}
	var answers []any
	for _, p := range params {
		v, err := f.Answer(ctx, p)
		require.NoError(t, err)
		answers = append(answers, v)
	}

	assert.Equal(t, []any{"default", []string{"cli", "orm"}, true, nil}, answers)
	want := []string{
		"Template type: default",
		"Features: cli,orm",
		"docker: true",
		"Port: ",
	}
	assert.Equal(t, want, f.Transcript.Lines())
	assert.Equal(t, want, echoed)
}

func TestTranscriptWriteFile(t *testing.T) {
	tr := &Transcript{}
	tr.Add("Template type: default")
	tr.Add("Docker: false")
	path := filepath.Join(t.TempDir(), "fakeInput.txt")

	require.NoError(t, tr.WriteFile(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Template type: default\nDocker: false\n", string(content))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "a,b", FormatValue([]any{"a", "b"}))
	assert.Equal(t, "8080", FormatValue(8080))
	assert.Equal(t, "", FormatValue(nil))
}
