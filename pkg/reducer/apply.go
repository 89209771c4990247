package reducer

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/paths"
)

// Report lists what Apply changed
type Report struct {
	Removed   []string
	Rewritten []string
	Unchanged int
}

// Apply reduces the tree rooted at dir: scheduled directories and files are
// removed first, then every remaining regular file goes through ReduceFile
// and is written back only when its content changed.
func Apply(ctx context.Context, e *Engine, dir string) (report *Report, err error) {
	defer recoverPanic("apply", errors.ErrReduce, &err)
	return apply(ctx, e, dir)
}

func apply(ctx context.Context, e *Engine, dir string) (*Report, error) {
	logger := logging.GetLogger("reducer.apply")
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", dir)
	}
	report := &Report{}

	dirs, err := e.DirectoriesForRemove()
	if err != nil {
		return nil, err
	}
	files, err := e.FilesForRemove()
	if err != nil {
		return nil, err
	}

	scheduled := append(append([]string(nil), dirs...), files...)
	for _, rel := range scheduled {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, errors.ErrCanceled, "reduction canceled")
		}
		removed, err := remove(root, rel)
		if err != nil {
			return report, err
		}
		if removed {
			report.Removed = append(report.Removed, rel)
		}
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrFileAccess, "failed to walk %s", path)
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCanceled, "reduction canceled")
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to relativize %s", path)
		}
		rel = filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", rel)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
		}

		reduced, err := e.ReduceFile(content, rel)
		if err != nil {
			return err
		}
		if bytes.Equal(content, reduced) {
			report.Unchanged++
			return nil
		}
		if err := os.WriteFile(path, reduced, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", rel)
		}
		report.Rewritten = append(report.Rewritten, rel)
		logger.Trace().Str("file", rel).Msg("File rewritten")
		return nil
	})
	if err != nil {
		return report, err
	}

	logger.Info().
		Int("removed", len(report.Removed)).
		Int("rewritten", len(report.Rewritten)).
		Int("unchanged", report.Unchanged).
		Msg("Reduction applied")
	return report, nil
}

func remove(root, rel string) (bool, error) {
	target := filepath.Join(root, filepath.FromSlash(rel))
	if target == root || !paths.IsWithin(root, target) {
		return false, errors.Newf(errors.ErrReduce, "refusing to remove %q outside the project", rel)
	}
	if _, err := os.Lstat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", rel)
	}
	if err := os.RemoveAll(target); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", rel)
	}
	return true, nil
}
