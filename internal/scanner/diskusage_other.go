//go:build !unix

package scanner

import "io/fs"

// diskUsageFor falls back to apparent size on platforms without a
// block-count stat field.
func diskUsageFor(info fs.FileInfo) int64 {
	return info.Size()
}
