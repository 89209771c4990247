package acquire

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/paths"
)

// Kind tells how a source is acquired
type Kind int

const (
	// Local is a directory on disk
	Local Kind = iota
	// Remote is a repository fetched over the network
	Remote
)

func (k Kind) String() string {
	if k == Remote {
		return "remote"
	}
	return "local"
}

// Source is a classified template location
type Source struct {
	Raw   string
	Kind  Kind
	Path  string
	Owner string
	Repo  string
}

func (s Source) String() string {
	if s.Kind == Remote {
		return fmt.Sprintf("%s/%s", s.Owner, s.Repo)
	}
	return s.Path
}

// Excludes returns the targets that lie strictly inside a local source, as
// slash-separated paths relative to it. Copying a template into one of its
// own subdirectories must leave that subdirectory out.
func (s Source) Excludes(targets ...string) []string {
	if s.Kind != Local {
		return nil
	}
	root := filepath.Clean(s.Path)
	var out []string
	for _, target := range targets {
		if target == "" {
			continue
		}
		abs := paths.Absolute(root, target)
		if abs == root || !paths.IsWithin(root, abs) {
			continue
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// Classify resolves raw against the template configuration. Relative local
// paths are made absolute against base.
func Classify(raw string, cfg config.TemplateConfig, base string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = cfg.DefaultSource
	}
	if raw == "" {
		return Source{}, errors.New(errors.ErrSourceInvalid, "no template source given")
	}

	if cfg.RemotePattern != "" {
		re, err := regexp.Compile(cfg.RemotePattern)
		if err != nil {
			return Source{}, errors.Wrap(err, errors.ErrConfigParse, "invalid template.remote_pattern")
		}
		if m := re.FindStringSubmatch(raw); m != nil {
			src := Source{Raw: raw, Kind: Remote}
			if len(m) > 2 {
				src.Owner, src.Repo = m[1], m[2]
			}
			return src, nil
		}
	}

	return Source{Raw: raw, Kind: Local, Path: paths.Absolute(base, raw)}, nil
}

// ArchiveURL fills the owner and repository into the configured archive URL
func ArchiveURL(pattern string, src Source) string {
	r := strings.NewReplacer("{owner}", src.Owner, "{repo}", src.Repo)
	return r.Replace(pattern)
}
