package scanner

import "fmt"

// ScanErrorCode classifies why a scan could not produce a ScanSnapshot.
type ScanErrorCode string

const (
	// NotFound means the root path does not exist.
	NotFound ScanErrorCode = "not_found"
	// NotDirectory means the root path exists but is not a directory.
	NotDirectory ScanErrorCode = "not_directory"
	// RootStatFailed means the root path exists but could not be stat'd.
	RootStatFailed ScanErrorCode = "root_stat_failed"
	// Cancelled means the scan was stopped via CancelCheck before finishing.
	Cancelled ScanErrorCode = "cancelled"
	// Internal covers anything else unexpected.
	Internal ScanErrorCode = "internal"
)

// ScanError is the error type every scan failure is reported as: a plain
// struct implementing error with a stable Code for callers to switch on,
// rather than a wrapped/annotated error chain.
type ScanError struct {
	Code  ScanErrorCode
	Path  string
	Cause error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *ScanError) Unwrap() error { return e.Cause }

// resolveRoot expands, checks, and stats the scan root, translating the
// FileSystem port's outcomes into the ScanErrorCode taxonomy above. It
// mirrors dux/scan/_base.py::resolve_root exactly: missing path, failed
// stat, and not-a-directory are three distinct, user-facing error codes.
func resolveRoot(fs FileSystem, path string) (RootInfo, *ScanError) {
	info, err := fs.ResolveRoot(path)
	if err != nil {
		if isNotExist(err) {
			return RootInfo{}, &ScanError{Code: NotFound, Path: path, Cause: err}
		}
		return RootInfo{}, &ScanError{Code: RootStatFailed, Path: path, Cause: err}
	}
	if !info.IsDir {
		return RootInfo{}, &ScanError{Code: NotDirectory, Path: path}
	}
	return info, nil
}
