package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"vcr-go/internal/renamer"
)

// IgnoreFileName is the per-root ignore file. Its patterns are merged with
// the configured ones.
const IgnoreFileName = ".vcrignore"

// AferoFilesystemManager implements renamer.FilesystemManager on top of an
// afero.Fs. Production code uses the OS filesystem; tests may pass a MemMapFs.
type AferoFilesystemManager struct {
	fs       afero.Fs
	patterns []string

	mu       sync.Mutex
	matchers map[string]*IgnoreMatcher // root -> matcher
}

// NewOSFilesystemManager creates a filesystem manager that operates on the real filesystem.
// ignore holds glob patterns from the config file.
func NewOSFilesystemManager(ignore []string) *AferoFilesystemManager {
	return NewFilesystemManager(afero.NewOsFs(), ignore)
}

// NewFilesystemManager creates a filesystem manager backed by afs.
func NewFilesystemManager(afs afero.Fs, ignore []string) *AferoFilesystemManager {
	return &AferoFilesystemManager{
		fs:       afs,
		patterns: ignore,
		matchers: make(map[string]*IgnoreMatcher),
	}
}

// Resolve validates a raw path and returns a Path object.
func (m *AferoFilesystemManager) Resolve(rawPath string) (*renamer.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := m.fs.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	mode := info.Mode()
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return renamer.NewPath(absPath, info.IsDir(), info), nil
}

// ReadDir lists the entries directly inside dir, sorted by name.
func (m *AferoFilesystemManager) ReadDir(dir *renamer.Path) ([]*renamer.Path, error) {
	if !dir.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir.String())
	}

	infos, err := afero.ReadDir(m.fs, dir.String())
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	paths := make([]*renamer.Path, 0, len(infos))
	for _, info := range infos {
		full := filepath.Join(dir.String(), info.Name())
		paths = append(paths, renamer.NewPath(full, info.IsDir(), info))
	}
	return paths, nil
}

// Rename moves oldPath to newPath.
func (m *AferoFilesystemManager) Rename(oldPath, newPath string) error {
	if filepath.Dir(oldPath) != filepath.Dir(newPath) {
		return fmt.Errorf("rename must stay within %s: %s", filepath.Dir(oldPath), newPath)
	}
	if err := m.fs.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Exists reports whether anything occupies path. Symlinks are not followed,
// so a dangling link still counts.
func (m *AferoFilesystemManager) Exists(path string) (bool, error) {
	_, err := m.lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

func (m *AferoFilesystemManager) lstat(path string) (fs.FileInfo, error) {
	if l, ok := m.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return m.fs.Stat(path)
}

// LoadIgnore compiles the ignore patterns for a run over root: the
// configured ones plus those in root's ignore file. It must be called before
// IsIgnored is used for that root, and again to pick up a changed file.
func (m *AferoFilesystemManager) LoadIgnore(root string) error {
	patterns := append([]string{IgnoreFileName}, m.patterns...)
	fromFile, err := ParseIgnoreFile(m.fs, filepath.Join(root, IgnoreFileName))
	if err != nil {
		return fmt.Errorf("loading ignore patterns: %w", err)
	}
	patterns = append(patterns, fromFile...)

	matcher, err := NewIgnoreMatcher(patterns)
	if err != nil {
		return fmt.Errorf("loading ignore patterns: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchers[root] = matcher
	return nil
}

// IsIgnored reports whether path matches the patterns loaded for root.
// Nothing is ignored under a root that was never loaded.
func (m *AferoFilesystemManager) IsIgnored(path *renamer.Path, root string) bool {
	m.mu.Lock()
	matcher, ok := m.matchers[root]
	m.mu.Unlock()
	if !ok {
		return false
	}

	rel, err := filepath.Rel(root, path.String())
	if err != nil {
		return false
	}
	return matcher.Match(rel, path.IsDir())
}

// Compile-time check that AferoFilesystemManager implements renamer.FilesystemManager interface
var _ renamer.FilesystemManager = (*AferoFilesystemManager)(nil)
