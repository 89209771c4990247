package acquire

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/go-git/go-billy/v5"
)

// CopyTree copies every entry of from into to, skipping entries whose base
// name is in skip at any depth and the slash-separated paths in exclude.
// It returns the number of files written.
func CopyTree(ctx context.Context, from, to billy.Filesystem, skip []string, exclude ...string) (int, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[path.Clean(e)] = true
	}
	c := &copier{from: from, to: to, skip: skipped, exclude: excluded}
	if err := c.dir(ctx, ""); err != nil {
		return c.files, err
	}
	return c.files, nil
}

type copier struct {
	from, to billy.Filesystem
	skip     map[string]bool
	exclude  map[string]bool
	files    int
}

func (c *copier) dir(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCanceled, "copy canceled")
	}
	if err := c.to.MkdirAll(dirName(rel), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dirName(rel))
	}
	entries, err := c.from.ReadDir(dirName(rel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dirName(rel))
	}
	for _, entry := range entries {
		if c.skip[entry.Name()] {
			continue
		}
		child := path.Join(rel, entry.Name())
		if c.exclude[child] {
			continue
		}
		switch {
		case entry.IsDir():
			if err := c.dir(ctx, child); err != nil {
				return err
			}
		case entry.Mode()&os.ModeSymlink != 0:
			if err := c.symlink(child); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := c.file(child, entry.Mode().Perm()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *copier) file(rel string, perm os.FileMode) error {
	in, err := c.from.Open(rel)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", rel)
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		perm = 0644
	}
	out, err := c.to.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", rel)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s", rel)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", rel)
	}
	c.files++
	return nil
}

func (c *copier) symlink(rel string) error {
	target, err := c.from.Readlink(rel)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", rel)
	}
	if err := c.to.Symlink(target, rel); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create link %s", rel)
	}
	return nil
}

func dirName(rel string) string {
	if rel == "" {
		return "/"
	}
	return rel
}
