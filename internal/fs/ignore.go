package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ignoreRule is one ignore line.
//
//	*.part        any entry whose name matches
//	Extras/       any directory named Extras
//	/Course/Notes only Course/Notes directly under the run root
//	*/Extras      Extras one level below the root
type ignoreRule struct {
	glob     string
	dirOnly  bool
	anchored bool // match the whole root-relative path, not the entry name
}

func (r ignoreRule) match(rel, name string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	subject := name
	if r.anchored {
		subject = rel
	}
	ok, _ := path.Match(r.glob, subject)
	return ok
}

// IgnoreMatcher decides which entries of a course tree the rename rules skip.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher compiles patterns. Blank lines and '#' comments are
// skipped. A malformed glob is an error.
func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	for _, raw := range patterns {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := ignoreRule{glob: line}
		if strings.HasSuffix(r.glob, "/") {
			r.dirOnly = true
			r.glob = strings.TrimRight(r.glob, "/")
		}
		if strings.HasPrefix(r.glob, "/") {
			r.anchored = true
			r.glob = strings.TrimLeft(r.glob, "/")
		}
		if strings.Contains(r.glob, "/") {
			r.anchored = true
		}
		if r.glob == "" {
			return nil, fmt.Errorf("ignore pattern %q matches nothing", line)
		}
		if _, err := path.Match(r.glob, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", line, err)
		}
		m.rules = append(m.rules, r)
	}
	return m, nil
}

// Match reports whether the entry at rel, a path relative to the run root,
// is ignored.
func (m *IgnoreMatcher) Match(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	name := path.Base(rel)
	for _, r := range m.rules {
		if r.match(rel, name, isDir) {
			return true
		}
	}
	return false
}

// ParseIgnoreFile reads the patterns in an ignore file. A missing file has
// no patterns; any other failure to read it is an error.
func ParseIgnoreFile(afs afero.Fs, name string) ([]string, error) {
	f, err := afs.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return lines, nil
}
