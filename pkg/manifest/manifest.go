// Package manifest rewrites a package.json dependency manifest in place.
//
// Edits are applied to the raw bytes with jsonparser so key order and every
// untouched value survive byte for byte; the result is then re-indented. The
// output of Rewrite is a fixed point: rewriting it again with the same
// arguments returns identical bytes.
package manifest

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/buger/jsonparser"
)

// DependencyGroups are the manifest objects pruned by Rewrite
var DependencyGroups = []string{"dependencies", "devDependencies"}

// Options describes one rewrite
type Options struct {
	// Name replaces the manifest name when non-empty
	Name string
	// Remove lists dependency keys stripped from every group
	Remove []string
	// Indent is the number of spaces per level; 0 writes compact JSON
	Indent int
}

// Rewrite applies opts to content
func Rewrite(content []byte, opts Options) ([]byte, error) {
	if !json.Valid(content) {
		return nil, errors.New(errors.ErrManifestParse, "manifest is not valid JSON")
	}
	if first := firstByte(content); first != '{' {
		return nil, errors.New(errors.ErrManifestParse, "manifest is not a JSON object")
	}

	data := append([]byte(nil), content...)

	if opts.Name != "" {
		encoded, err := json.Marshal(opts.Name)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to encode name")
		}
		data, err = jsonparser.Set(data, encoded, "name")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to set name")
		}
	}

	for _, group := range DependencyGroups {
		_, dataType, _, err := jsonparser.Get(data, group)
		if err == jsonparser.KeyPathNotFoundError {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read %s", group)
		}
		if dataType != jsonparser.Object {
			continue
		}
		for _, dep := range opts.Remove {
			if !has(data, group, dep) {
				continue
			}
			data = jsonparser.Delete(data, group, dep)
		}
	}

	return format(data, opts.Indent)
}

// Dependencies lists the keys of one dependency group in manifest order
func Dependencies(content []byte, group string) ([]string, error) {
	var keys []string
	err := jsonparser.ObjectEach(content, func(key []byte, _ []byte, _ jsonparser.ValueType, _ int) error {
		keys = append(keys, string(key))
		return nil
	}, group)
	if err == jsonparser.KeyPathNotFoundError {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read %s", group)
	}
	return keys, nil
}

// Name returns the manifest name field
func Name(content []byte) (string, error) {
	name, err := jsonparser.GetString(content, "name")
	if err == jsonparser.KeyPathNotFoundError {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrManifestParse, "failed to read name")
	}
	return name, nil
}

func has(data []byte, keys ...string) bool {
	_, _, _, err := jsonparser.Get(data, keys...)
	return err == nil
}

func format(data []byte, indent int) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "rewritten manifest is not valid JSON")
	}
	if indent <= 0 {
		return append(compact.Bytes(), '\n'), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to indent manifest")
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
