// Package pathmatch implements find -path matching semantics.
//
// Patterns follow fnmatch(3) without FNM_PATHNAME or FNM_PERIOD:
//   - * matches any run of characters, including / and leading dots
//   - ? matches exactly one character, including /
//   - [...] matches one character from the set, [!...] one outside it
//   - \ escapes the next character
//
// A pattern must match the whole path. This differs from filepath.Match,
// where * stops at a directory separator.
package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Match reports whether path matches the pattern using find -path semantics.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher pre-compiles patterns for reuse across many paths.
// The zero value and a Matcher built from no patterns match nothing.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matcher.patterns = append(matcher.patterns, re)
	}

	return matcher, nil
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}

	return len(m.patterns)
}

// MatchAny reports whether path matches any of the compiled patterns.
func (m *Matcher) MatchAny(path string) bool {
	if m == nil {
		return false
	}

	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

var errUnclosedClass = errors.New("unclosed character class")

var cache sync.Map //nolint:gochecknoglobals // compiled patterns are shared across matchers

// compile converts a pattern to an anchored regexp, caching the result.
func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil //nolint:forcetypeassert // only *regexp.Regexp is stored
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	actual, _ := cache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil //nolint:forcetypeassert // only *regexp.Regexp is stored
}

// translate rewrites a glob pattern as regexp source.
func translate(pattern string) (string, error) {
	runes := []rune(pattern)

	var expr strings.Builder

	expr.WriteByte('^')

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			expr.WriteString("(?s:.*)")
		case '?':
			expr.WriteString("(?s:.)")
		case '\\':
			if i+1 == len(runes) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			i++
			expr.WriteString(regexp.QuoteMeta(string(runes[i])))
		case '[':
			class, end, err := bracket(runes, i)
			if err != nil {
				return "", fmt.Errorf("%w in pattern %q", err, pattern)
			}

			expr.WriteString(class)

			i = end
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	expr.WriteByte('$')

	return expr.String(), nil
}

// bracket translates the character class opening at runes[start] and returns
// it with the index of its closing bracket. A ] directly after the opening
// bracket or its negation is a literal member.
func bracket(runes []rune, start int) (string, int, error) {
	i := start + 1

	var class strings.Builder

	class.WriteByte('[')

	if i < len(runes) && runes[i] == '!' {
		class.WriteByte('^')

		i++
	}

	for first := true; i < len(runes); i, first = i+1, false {
		r := runes[i]

		if r == ']' && !first {
			class.WriteByte(']')

			return class.String(), i, nil
		}

		switch r {
		case '\\', '[', ']', '^':
			class.WriteByte('\\')
		}

		class.WriteRune(r)
	}

	return "", 0, errUnclosedClass
}
