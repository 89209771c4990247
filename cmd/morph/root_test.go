package morph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/morph/internal/version"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/manifest"
	"github.com/arthur-debert/morph/pkg/prompt"
	"github.com/arthur-debert/morph/pkg/reducer"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "..", "pkg", "generate", "testdata", "template"))
	require.NoError(t, err)
	return dir
}

// isolate points every XDG location at a temp dir and moves into a fresh working directory
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("MORPH_CONFIG_DIR", filepath.Join(home, "config"))
	t.Setenv("MORPH_CACHE_DIR", filepath.Join(home, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("NO_COLOR", "1")

	wd := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(original) })
	return wd
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func fixedApp(tc types.TestCase) *app {
	a := defaultApp()
	a.newAnswers = func(context.CancelFunc) reducer.AnswerSource {
		return prompt.NewFixed(tc, nil)
	}
	return a
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, defaultApp(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "morph version "+version.Version)
}

func TestNoCommand(t *testing.T) {
	isolate(t)
	_, err := execute(t, defaultApp())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCreateCmd(t *testing.T) {
	tmpl := templateDir(t)
	wd := isolate(t)

	out, err := execute(t, fixedApp(types.TestCase{"type": "default"}), "create", "myapp", tmpl, "--skip-install")
	require.NoError(t, err)

	dest := filepath.Join(wd, "myapp")
	assert.Contains(t, out, "finished myapp")
	assert.Contains(t, out, "Project myapp created at "+dest)
	assert.Regexp(t, `Removed \d+, rewrote \d+, left \d+ unchanged`, out)
	assert.DirExists(t, filepath.Join(dest, "src", "database"))
	assert.NoFileExists(t, filepath.Join(dest, "TemplateReducer.go"))

	content, err := os.ReadFile(filepath.Join(dest, "package.json"))
	require.NoError(t, err)
	name, err := manifest.Name(content)
	require.NoError(t, err)
	assert.Equal(t, "myapp", name)
}

func TestCreateCmdExistingDestination(t *testing.T) {
	tmpl := templateDir(t)
	wd := isolate(t)
	require.NoError(t, os.Mkdir(filepath.Join(wd, "myapp"), 0755))

	_, err := execute(t, fixedApp(types.TestCase{"type": "default"}), "create", "myapp", tmpl)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestCreateCmdRequiresDestination(t *testing.T) {
	isolate(t)
	_, err := execute(t, defaultApp(), "create")
	assert.Error(t, err)
}

func TestTestCmd(t *testing.T) {
	tmpl := templateDir(t)
	wd := isolate(t)

	out, err := execute(t, defaultApp(), "test", tmpl)
	require.NoError(t, err)
	assert.Contains(t, out, "=== TESTING CASE 2 OF 2 ===")
	assert.Contains(t, out, "2 of 2 cases passed")

	entries, err := os.ReadDir(wd)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTestCmdSingleCaseKeep(t *testing.T) {
	tmpl := templateDir(t)
	wd := isolate(t)

	out, err := execute(t, defaultApp(), "test", tmpl, "2", "--keep")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 cases passed")
	assert.Contains(t, out, "Kept "+wd)
}

func TestTestCmdBadCaseNumber(t *testing.T) {
	isolate(t)
	for _, arg := range []string{"x", "0"} {
		_, err := execute(t, defaultApp(), "test", ".", arg)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), arg)
	}
}

func TestGuideCmd(t *testing.T) {
	isolate(t)

	out, err := execute(t, defaultApp(), "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "  reducers\n")

	out, err = execute(t, defaultApp(), "guide", "testing")
	require.NoError(t, err)
	assert.Contains(t, out, "fakeInput.txt")

	_, err = execute(t, defaultApp(), "guide", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCompletionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, defaultApp(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "morph")

	_, err = execute(t, defaultApp(), "completion", "tcsh")
	assert.Error(t, err)
}

func TestFormatFlag(t *testing.T) {
	isolate(t)
	_, err := execute(t, defaultApp(), "--format", "json", "version")
	assert.Error(t, err)
}
