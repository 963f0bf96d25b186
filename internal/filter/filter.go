// Package filter resolves command line paths into the files to process.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/listcrypt/pkg/pathmatch"
)

// tempPrefix marks in-flight atomic writes, which are never picked up.
const tempPrefix = ".tmp-"

// Filter decides which files found while walking a directory are processed.
// When decrypting only files carrying the encrypted suffix are selected; when
// encrypting, files that already carry it are skipped. Include and exclude
// patterns use find -path semantics on the path relative to the walked
// directory. Empty includes means "match all". Excludes always win.
type Filter struct {
	suffix   string
	decrypt  bool
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// NewFilter compiles include/exclude patterns into a reusable filter.
func NewFilter(suffix string, decrypt bool, includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(normalizePatterns(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(normalizePatterns(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{
		suffix:   suffix,
		decrypt:  decrypt,
		includes: inc,
		excludes: exc,
	}, nil
}

// Match reports whether the file at rel, relative to the walked directory and
// using forward slashes, should be processed.
func (f *Filter) Match(rel string) bool {
	base := filepath.Base(rel)

	if strings.HasPrefix(base, tempPrefix) {
		return false
	}

	if f.suffix != "" && strings.HasSuffix(base, f.suffix) != f.decrypt {
		return false
	}

	included := f.includes.Len() == 0 || f.includes.MatchAny(rel)

	return included && !f.excludes.MatchAny(rel)
}

// normalizePatterns strips leading "./" from patterns so they match cleaned paths.
func normalizePatterns(patterns []string) []string {
	normalized := make([]string, len(patterns))

	for i, p := range patterns {
		normalized[i] = strings.TrimPrefix(p, "./")
	}

	return normalized
}

// Resolve takes positional args (files/directories).
// Files are added directly (bypassing filtering). Directories are walked and filtered.
// Returns matched files in argument order without duplicates and the total
// number of candidates scanned.
func Resolve(args []string, flt *Filter) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, flt)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("no files matched: %v", args)
	}

	return files, scanned, nil
}

// walkDir walks root recursively, returning regular files that pass the filter.
func walkDir(root string, flt *Filter) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %q: %w", path, err)
		}

		if flt.Match(filepath.ToSlash(rel)) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
