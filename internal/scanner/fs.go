package scanner

import "time"

// EntryKind mirrors Kind but describes a raw directory entry before a
// ScanNode is built for it, keeping the FileSystem port free of ScanNode.
type EntryKind int8

const (
	// EntryFile is a regular file entry.
	EntryFile EntryKind = iota
	// EntryDir is a directory entry.
	EntryDir
	// EntryOther is a symlink, device, socket, or anything else FinalizeSizes
	// and the matcher don't need to special-case; it is recorded but not
	// recursed into.
	EntryOther
)

// StatInfo is the subset of os.FileInfo the scanner actually needs, kept
// small and platform-neutral so DiskUsage (block-count based on unix, a
// fallback elsewhere) is the only piece that varies by OS.
type StatInfo struct {
	SizeBytes int64
	DiskUsage int64
	ModTime   time.Time
}

// Entry is one child discovered while reading a directory.
type Entry struct {
	Name string
	Kind EntryKind
	Stat StatInfo
	// Err is non-nil when the entry could not be stat'd; Kind and Stat are
	// zero values in that case and the caller counts it as an access error.
	Err error
}

// RootInfo is the result of resolving and stat'ing the scan root.
type RootInfo struct {
	AbsolutePath string
	IsDir        bool
}

// FileSystem is the port the scanner reads through (§4.A). A default
// OS-backed implementation lives in fs_os.go; tests substitute a fake to
// exercise worker-pool behavior without touching disk.
type FileSystem interface {
	// ResolveRoot expands "~", checks existence, and returns the absolute
	// path plus whether it is a directory. See resolveRoot in errors.go for
	// how its outcomes map to ScanErrorCode.
	ResolveRoot(path string) (RootInfo, error)

	// ReadDir lists the immediate children of dir, stat'ing each one. It
	// returns as many entries as could be read even if some individual
	// stats failed (reflected per-entry via Entry.Err); the returned error
	// is non-nil only when the directory itself could not be opened/read.
	ReadDir(dir string) ([]Entry, error)
}
