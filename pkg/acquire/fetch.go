package acquire

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/arthur-debert/morph/pkg/config"
	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/rs/zerolog"
)

// CloneFunc fetches a repository into a filesystem
type CloneFunc func(ctx context.Context, url string) (billy.Filesystem, error)

// Acquirer opens and copies template sources
type Acquirer struct {
	cfg    config.TemplateConfig
	client *http.Client
	clone  CloneFunc
	logger zerolog.Logger
}

// Option customizes an Acquirer
type Option func(*Acquirer)

// WithHTTPClient sets the client used for archive downloads
func WithHTTPClient(c *http.Client) Option {
	return func(a *Acquirer) { a.client = c }
}

// WithClone replaces the git clone used by the git remote method
func WithClone(fn CloneFunc) Option {
	return func(a *Acquirer) { a.clone = fn }
}

// New creates an Acquirer
func New(cfg config.TemplateConfig, opts ...Option) *Acquirer {
	a := &Acquirer{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Minute},
		clone:  gitClone,
		logger: logging.GetLogger("acquire"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify resolves raw with the acquirer's configuration
func (a *Acquirer) Classify(raw, base string) (Source, error) {
	return Classify(raw, a.cfg, base)
}

// Open returns the template tree of src as a filesystem
func (a *Acquirer) Open(ctx context.Context, src Source) (billy.Filesystem, error) {
	if src.Kind == Local {
		info, err := os.Stat(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrNotFound, "template %s does not exist", src.Path)
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src.Path)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrSourceInvalid, "template %s is not a directory", src.Path)
		}
		return osfs.New(src.Path), nil
	}

	switch a.cfg.RemoteMethod {
	case "git":
		a.logger.Info().Str("url", src.Raw).Msg("Cloning template")
		fs, err := a.clone(ctx, src.Raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAcquire, "failed to clone %s", src.Raw)
		}
		return fs, nil
	default:
		url := ArchiveURL(a.cfg.ArchiveURL, src)
		a.logger.Info().Str("url", url).Msg("Downloading template")
		return a.download(ctx, url)
	}
}

// Acquire copies src into dest, which is created if needed. Paths in
// exclude, like dest itself, are left out when they lie inside a local src.
func (a *Acquirer) Acquire(ctx context.Context, src Source, dest string, exclude ...string) (int, error) {
	done := logging.LogOperationStart(a.logger, "acquire")
	defer done()

	from, err := a.Open(ctx, src)
	if err != nil {
		return 0, err
	}
	targets := append([]string{dest}, exclude...)
	n, err := CopyTree(ctx, from, osfs.New(dest), a.cfg.Skip, src.Excludes(targets...)...)
	if err != nil {
		return n, err
	}
	a.logger.Debug().Str("source", src.String()).Str("dest", dest).Int("files", n).Msg("Template copied")
	return n, nil
}

func (a *Acquirer) download(ctx context.Context, url string) (billy.Filesystem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAcquire, "bad archive url %s", url)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.ErrCanceled, "download canceled")
		}
		return nil, errors.Wrapf(err, errors.ErrAcquire, "failed to download %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrAcquire, "download of %s failed: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	fs, err := Extract(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAcquire, "failed to extract %s", url)
	}
	return fs, nil
}

// Extract unpacks a gzipped tarball into memory. When every entry lives
// under one top-level directory the returned filesystem is rooted there.
func Extract(r io.Reader) (billy.Filesystem, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrAcquire, "archive is not gzip")
	}
	defer func() { _ = gz.Close() }()

	fs := memfs.New()
	tops := map[string]bool{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrAcquire, "corrupt archive")
		}

		name := path.Clean(strings.TrimPrefix(hdr.Name, "./"))
		if name == "." || strings.HasPrefix(name, "../") || name == ".." || path.IsAbs(name) {
			continue
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		tops[strings.SplitN(name, "/", 2)[0]] = true

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(name, 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", name)
			}
		case tar.TypeReg:
			if err := writeEntry(fs, name, os.FileMode(hdr.Mode).Perm(), tr); err != nil {
				return nil, err
			}
		case tar.TypeSymlink:
			if err := fs.MkdirAll(path.Dir(name), 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path.Dir(name))
			}
			if err := fs.Symlink(hdr.Linkname, name); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to link %s", name)
			}
		}
	}

	if len(tops) == 1 {
		for top := range tops {
			if info, err := fs.Stat(top); err == nil && info.IsDir() {
				return fs.Chroot(top)
			}
		}
	}
	return fs, nil
}

func writeEntry(fs billy.Filesystem, name string, perm os.FileMode, r io.Reader) error {
	if err := fs.MkdirAll(path.Dir(name), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path.Dir(name))
	}
	if perm == 0 {
		perm = 0644
	}
	f, err := fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", name)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", name)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", name)
	}
	return nil
}

func gitClone(ctx context.Context, url string) (billy.Filesystem, error) {
	fs := memfs.New()
	_, err := git.CloneContext(ctx, memory.NewStorage(), fs, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("git clone: %w", err)
	}
	return fs, nil
}
