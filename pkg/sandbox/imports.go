package sandbox

import (
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// CheckImports parses src and rejects any import outside allowed and the
// reducer contract. It also requires package main.
func CheckImports(filename, src string, allowed map[string]bool) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ImportsOnly)
	if err != nil {
		return errors.Wrapf(err, errors.ErrReducerLoad, "failed to parse %s", filename)
	}
	if file.Name.Name != "main" {
		return errors.Newf(errors.ErrReducerLoad, "%s must be in package main, found %s", filename, file.Name.Name)
	}

	var forbidden []string
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return errors.Wrapf(err, errors.ErrReducerLoad, "bad import in %s", filename)
		}
		if path == TypesImportPath || allowed[path] {
			continue
		}
		forbidden = append(forbidden, path)
	}
	if len(forbidden) > 0 {
		return errors.Newf(errors.ErrReducerForbidden, "%s imports forbidden packages: %s",
			filename, strings.Join(forbidden, ", ")).
			WithDetail("imports", forbidden)
	}
	return nil
}

// allowedSymbols filters the yaegi stdlib table down to the allowed import paths
func allowedSymbols(allowed map[string]bool) interp.Exports {
	out := interp.Exports{}
	for key, symbols := range stdlib.Symbols {
		if allowed[importPath(key)] {
			out[key] = symbols
		}
	}
	return out
}

// importPath strips the trailing package name from a yaegi symbol key:
// "path/filepath/filepath" becomes "path/filepath".
func importPath(key string) string {
	i := strings.LastIndex(key, "/")
	if i < 0 {
		return key
	}
	return key[:i]
}

func allowSet(imports []string) map[string]bool {
	set := make(map[string]bool, len(imports))
	for _, imp := range imports {
		set[strings.TrimSpace(imp)] = true
	}
	return set
}

// Allowed returns the sorted import paths a loader accepts
func (l *Loader) Allowed() []string {
	out := make([]string, 0, len(l.allowed)+1)
	for imp := range l.allowed {
		out = append(out, imp)
	}
	out = append(out, TypesImportPath)
	sort.Strings(out)
	return out
}
