// Package acquire materializes a template into a working directory.
//
// A template source is either a local directory or a remote repository URL
// matching template.remote_pattern. Every source is opened as a go-billy
// filesystem (osfs for local paths, memfs for remote ones) and copied with a
// single routine that honors the skip list, so local and remote templates
// produce identical trees.
//
// Remote templates are fetched either as a gzipped tarball of the default
// branch (remote_method = "archive") or with a shallow go-git clone
// (remote_method = "git"). A tarball with a single top-level directory is
// flattened into the destination.
package acquire
