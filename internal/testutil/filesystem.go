package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// WriteTree creates entries under root. Entries ending in "/" become
// directories; everything else becomes a file whose content is its own
// relative path, so content can be traced after renames.
func WriteTree(t *testing.T, afs afero.Fs, root string, entries ...string) {
	t.Helper()

	if err := afs.MkdirAll(root, 0755); err != nil {
		t.Fatalf("creating root %s: %v", root, err)
	}
	for _, e := range entries {
		full := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			if err := afs.MkdirAll(full, 0755); err != nil {
				t.Fatalf("creating directory %s: %v", full, err)
			}
			continue
		}
		if err := afs.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", full, err)
		}
		if err := afero.WriteFile(afs, full, []byte(e), 0644); err != nil {
			t.Fatalf("writing file %s: %v", full, err)
		}
	}
}

// ReadTree returns every entry under root as a sorted slash-separated
// relative path, with a trailing "/" on directories.
func ReadTree(t *testing.T, afs afero.Fs, root string) []string {
	t.Helper()

	var entries []string
	err := afero.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			rel += "/"
		}
		entries = append(entries, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	sort.Strings(entries)
	return entries
}

// ReadContent returns the content of the file at root/rel.
func ReadContent(t *testing.T, afs afero.Fs, root, rel string) string {
	t.Helper()

	data, err := afero.ReadFile(afs, filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}
