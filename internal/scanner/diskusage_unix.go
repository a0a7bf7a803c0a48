//go:build unix

package scanner

import (
	"io/fs"
	"syscall"
)

// diskUsageFor returns the space actually allocated on disk for a file,
// which for sparse files and files below the filesystem's block size
// differs from the apparent SizeBytes. 512 is the traditional st_blocks
// unit on every unix golang.org/x/sys targets; it is not the filesystem's
// block size itself.
func diskUsageFor(info fs.FileInfo) int64 {
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}
	return int64(sys.Blocks) * 512
}
