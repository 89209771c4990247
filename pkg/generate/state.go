package generate

import (
	"os"
	"sync"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/rs/zerolog"
)

// State is the progress of one generation run
type State int

const (
	// Checking validates arguments and fetches remote sources
	Checking State = iota
	// Copying is writing the template into the destination
	Copying
	// Copied means the destination holds the template and is being reduced
	Copied
	// Done means the project is complete
	Done
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Copying:
		return "copying"
	case Copied:
		return "copied"
	case Done:
		return "done"
	}
	return "unknown"
}

// NeedsCleanup reports whether a run ending in s leaves a partial destination
func (s State) NeedsCleanup() bool {
	return s == Copying || s == Copied
}

// Guard removes a partially generated destination
type Guard struct {
	mu      sync.Mutex
	dir     string
	state   State
	cleaned bool
	logger  zerolog.Logger
}

// NewGuard creates a guard for dir, starting in Checking
func NewGuard(dir string) *Guard {
	return &Guard{dir: dir, state: Checking, logger: logging.GetLogger("generate.guard")}
}

// Advance moves the run to s
func (g *Guard) Advance(s State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logger.Debug().Str("from", g.state.String()).Str("to", s.String()).Msg("State changed")
	g.state = s
}

// State returns the current state
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Release marks the run done; Close then leaves the destination alone
func (g *Guard) Release() {
	g.Advance(Done)
}

// Close removes the destination when the run stopped in copying or copied.
// It runs at most once.
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cleaned || !g.state.NeedsCleanup() {
		return nil
	}
	g.cleaned = true
	g.logger.Warn().Str("dir", g.dir).Str("state", g.state.String()).Msg("Removing partial project")
	if err := os.RemoveAll(g.dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", g.dir)
	}
	return nil
}
