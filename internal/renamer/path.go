package renamer

import (
	"io/fs"
	"path/filepath"
)

// Path represents a validated filesystem path with cached metadata.
// Path objects are created by FilesystemManager.Resolve and ReadDir.
// A Path is a snapshot: after the entry is renamed it no longer describes
// anything on disk and must not be reused.
type Path struct {
	absPath string
	isDir   bool
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilesystemManager implementations.
func NewPath(absPath string, isDir bool, info fs.FileInfo) *Path {
	return &Path{
		absPath: absPath,
		isDir:   isDir,
		info:    info,
	}
}

// String returns the absolute path as a string.
func (p *Path) String() string {
	return p.absPath
}

// Name returns the last path segment.
func (p *Path) Name() string {
	return filepath.Base(p.absPath)
}

// IsDir returns true if this path points to a directory.
func (p *Path) IsDir() bool {
	return p.isDir
}

// IsRegular returns true if this path points to a regular file.
func (p *Path) IsRegular() bool {
	if p.info == nil {
		return !p.isDir
	}
	return p.info.Mode().IsRegular()
}
