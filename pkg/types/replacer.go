package types

import (
	stderrors "errors"
	"regexp"

	"github.com/arthur-debert/morph/pkg/errors"
)

// Matcher selects files by slash-separated path relative to the project root
type Matcher struct {
	exact   string
	pattern *regexp.Regexp
	expr    string
	err     error
}

// Exact matches exactly one relative path
func Exact(path string) Matcher {
	return Matcher{exact: path}
}

// Pattern matches every relative path the regular expression finds a match in.
// An invalid expression is reported by Err and never matches.
func Pattern(expr string) Matcher {
	re, err := regexp.Compile(expr)
	return Matcher{pattern: re, expr: expr, err: err}
}

// Regexp matches every relative path re finds a match in. A nil re is
// reported by Err and never matches.
func Regexp(re *regexp.Regexp) Matcher {
	if re == nil {
		return Matcher{err: errNilRegexp}
	}
	return Matcher{pattern: re, expr: re.String()}
}

var errNilRegexp = stderrors.New("nil regular expression")

// Matches reports whether path is selected
func (m Matcher) Matches(path string) bool {
	if m.pattern != nil {
		return m.pattern.MatchString(path)
	}
	return m.exact != "" && m.exact == path
}

// Err returns the compile error of an invalid pattern
func (m Matcher) Err() error {
	if m.err != nil {
		return errors.Wrapf(m.err, errors.ErrReducerLoad, "invalid replacer pattern %q", m.expr)
	}
	if m.pattern == nil && m.exact == "" {
		return errors.New(errors.ErrReducerLoad, "replacer has an empty matcher")
	}
	return nil
}

// String describes the matcher for logs
func (m Matcher) String() string {
	if m.pattern != nil || m.err != nil {
		return "/" + m.expr + "/"
	}
	return m.exact
}

// ReplaceFunc transforms the content of the file at path
type ReplaceFunc func(content, path string) (string, error)

// ContentReplacer pairs a path matcher with a transform. Every replacer
// matching a file applies, in declaration order.
type ContentReplacer struct {
	Match   Matcher
	Replace ReplaceFunc
}

// Replace is shorthand for building a ContentReplacer
func Replace(m Matcher, fn ReplaceFunc) ContentReplacer {
	return ContentReplacer{Match: m, Replace: fn}
}
