package renamer

// FilesystemManager provides an interface for filesystem operations.
// It abstracts file access so the planner can run against an in-memory tree.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and rejects
	// devices, named pipes and sockets.
	Resolve(rawPath string) (*Path, error)

	// ReadDir lists every entry directly inside dir, including entries the
	// rename rules will not touch (symlinks, ignored names).
	ReadDir(dir *Path) ([]*Path, error)

	// Rename moves oldPath to newPath. Both must share a parent directory.
	Rename(oldPath, newPath string) error

	// Exists reports whether anything, including a dangling symlink, occupies path.
	Exists(path string) (bool, error)

	// LoadIgnore reads the ignore patterns that apply to a run over root.
	// An ignore file that exists but cannot be read is an error.
	LoadIgnore(root string) error

	// IsIgnored reports whether path matches an ignore pattern loaded for
	// root, the directory the run was started on.
	IsIgnored(path *Path, root string) bool
}
