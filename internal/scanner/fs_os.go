package scanner

import (
	"io"
	"os"
	"path/filepath"
)

// readDirBatchSize bounds how many entries os.File.ReadDir returns per call.
// Reading through os.File.ReadDir rather than os.ReadDir leaves entries in
// directory order, skipping the alphabetical sort os.ReadDir applies.
const readDirBatchSize = 1024

// osFileSystem is the default FileSystem backed by the os package.
type osFileSystem struct{}

// NewOSFileSystem returns the production FileSystem implementation.
func NewOSFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) ResolveRoot(path string) (RootInfo, error) {
	expanded, err := expandUser(path)
	if err != nil {
		return RootInfo{}, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return RootInfo{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return RootInfo{}, err
	}
	return RootInfo{AbsolutePath: abs, IsDir: info.IsDir()}, nil
}

func expandUser(path string) (string, error) {
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && path[1] == '/'
}

func (osFileSystem) ReadDir(dir string) ([]Entry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	for {
		batch, err := f.ReadDir(readDirBatchSize)
		for _, de := range batch {
			entries = append(entries, entryFromDirEntry(dir, de))
		}
		if err != nil {
			if err != io.EOF {
				return entries, err
			}
			break
		}
	}
	return entries, nil
}

func entryFromDirEntry(dir string, de os.DirEntry) Entry {
	info, err := de.Info()
	if err != nil {
		return Entry{Name: de.Name(), Err: err}
	}

	kind := EntryOther
	switch {
	case info.IsDir():
		kind = EntryDir
	case info.Mode().IsRegular():
		kind = EntryFile
	}

	return Entry{
		Name: de.Name(),
		Kind: kind,
		Stat: StatInfo{
			SizeBytes: info.Size(),
			DiskUsage: diskUsageFor(info),
			ModTime:   info.ModTime(),
		},
	}
}
