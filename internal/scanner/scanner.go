package scanner

import (
	"runtime"
	"sync"
	"time"
)

// defaultWorkers sizes the pool off runtime.NumCPU(), but with a far
// smaller multiplier than a simple name-listing walk would use: each task
// here does a full stat-each-entry ReadDir, so it's CPU/syscall bound
// rather than purely I/O bound.
func defaultWorkers() int {
	n := runtime.NumCPU() * 4
	if n < 8 {
		n = 8
	}
	return n
}

// workerShutdownTimeout bounds how long Scan waits for a worker goroutine to
// notice shutdown and exit, matching dux's 0.3s thread-join timeout.
const workerShutdownTimeout = 300 * time.Millisecond

// ProgressCallback is invoked from worker goroutines with the directory
// just processed and the cumulative approximate files/directories scanned
// so far, whenever the shared running total (files + directories) crosses a
// 100-item boundary (§4.D step 5-6, §6). Implementations must be safe to call concurrently;
// the scanner makes no ordering guarantees across callers. It may be nil.
type ProgressCallback func(currentPath string, approximateFiles, approximateDirectories int64)

// CancelCheck is polled by each worker between tasks; once it returns true
// the scan winds down cooperatively rather than stopping mid-task (§5). It
// may be nil, in which case the scan is never cancelled.
type CancelCheck func() bool

// ScanOptions configures one Scan call (§3).
type ScanOptions struct {
	// MaxDepth bounds recursion: nil means unlimited, 0 means root's direct
	// children are scanned but not recursed into. The pointer distinguishes
	// "unset" from the zero value, which a plain int cannot.
	MaxDepth *int
	// Workers sets the worker pool size; <= 0 selects defaultWorkers().
	Workers int
}

// ScanStats accumulates counters across the whole scan (§3). Workers flush
// their local counters into a shared instance under a single mutex once per
// directory processed, rather than paying an atomic increment per file —
// the same batching dux's threading.Lock-guarded stats performs.
type ScanStats struct {
	mu           sync.Mutex
	FilesScanned int64
	DirsScanned  int64
	Errors       int64
	BytesScanned int64
}

func (s *ScanStats) flush(files, dirs, errs, bytes int64) {
	s.mu.Lock()
	s.FilesScanned += files
	s.DirsScanned += dirs
	s.Errors += errs
	s.BytesScanned += bytes
	s.mu.Unlock()
}

// Snapshot returns a copy of the current counters, safe to read while a
// scan is still running (e.g. for a live status line).
func (s *ScanStats) Snapshot() ScanStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ScanStats{
		FilesScanned: s.FilesScanned,
		DirsScanned:  s.DirsScanned,
		Errors:       s.Errors,
		BytesScanned: s.BytesScanned,
	}
}

// ScanSnapshot is the successful result of a Scan call (§3).
type ScanSnapshot struct {
	Root  *ScanNode
	Stats *ScanStats
}

// Scan walks rootPath with a worker pool, building a ScanNode tree and
// accumulating ScanStats, then finalizing directory sizes once every
// worker has exited (§4.D). progress and cancelled may both be nil.
func Scan(fs FileSystem, rootPath string, opts ScanOptions, progress ProgressCallback, cancelled CancelCheck) (*ScanSnapshot, *ScanError) {
	rootInfo, scanErr := resolveRoot(fs, rootPath)
	if scanErr != nil {
		return nil, scanErr
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}

	root := NewDirectory(rootInfo.AbsolutePath, rootInfo.AbsolutePath)
	stats := &ScanStats{}
	q := newWorkQueue()
	q.put(task{node: root, depth: 0})

	isCancelled := func() bool {
		return cancelled != nil && cancelled()
	}

	var reportedItems int64
	var progressMu sync.Mutex
	emitProgress := func(path string, files, dirs int64) {
		if progress == nil {
			return
		}
		total := files + dirs
		progressMu.Lock()
		prev := reportedItems
		reportedItems = total
		progressMu.Unlock()
		if prev/100 != total/100 {
			progress(path, files, dirs)
		}
	}

	var wg sync.WaitGroup
	workerDone := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { workerDone <- struct{}{} }()
			runWorker(fs, q, opts, stats, isCancelled, emitProgress)
		}()
	}

	q.join()
	q.shutdown()

	for i := 0; i < workers; i++ {
		select {
		case <-workerDone:
		case <-time.After(workerShutdownTimeout):
		}
	}

	if isCancelled() {
		return nil, &ScanError{Code: Cancelled, Path: rootInfo.AbsolutePath}
	}

	FinalizeSizes(root)
	return &ScanSnapshot{Root: root, Stats: stats}, nil
}

// runWorker implements the per-task loop from §4.D: pull a task, bail out
// early if cancelled, read the directory through the FileSystem port,
// build child nodes, enqueue subdirectories within the depth gate, flush
// batched stats, and emit a progress update if the reporting boundary was
// crossed. taskDone is always called, cancelled or not, so Join's
// outstanding counter never wedges.
func runWorker(fs FileSystem, q *workQueue, opts ScanOptions, stats *ScanStats, isCancelled CancelCheck, emitProgress func(path string, files, dirs int64)) {
	for {
		t, ok := q.get()
		if !ok {
			return
		}

		if isCancelled() {
			q.taskDone()
			continue
		}

		var localFiles, localDirs, localErrors, localBytes int64

		entries, err := fs.ReadDir(t.node.Path)
		if err != nil {
			t.node.Err = err
			localErrors++
		} else {
			children := make([]*ScanNode, 0, len(entries))
			var subdirs []task
			for _, e := range entries {
				if e.Err != nil {
					localErrors++
					continue
				}
				childPath := joinPath(t.node.Path, e.Name)
				switch e.Kind {
				case EntryDir:
					child := NewDirectory(childPath, e.Name)
					children = append(children, child)
					localDirs++
					if depthAllows(opts.MaxDepth, t.depth) {
						subdirs = append(subdirs, task{node: child, depth: t.depth + 1})
					}
				default:
					child := NewFile(childPath, e.Name, e.Stat.SizeBytes, e.Stat.DiskUsage)
					children = append(children, child)
					localFiles++
					localBytes += e.Stat.SizeBytes
				}
			}
			t.node.Children = children
			if len(subdirs) > 0 {
				q.putMany(subdirs)
			}
		}

		stats.flush(localFiles, localDirs, localErrors, localBytes)
		snap := stats.Snapshot()
		emitProgress(t.node.Path, snap.FilesScanned, snap.DirsScanned)
		q.taskDone()
	}
}

// depthAllows reports whether a directory found at the current depth should
// itself be recursed into. maxDepth nil means unlimited; maxDepth 0 means
// only the root's direct children are scanned, never their subdirectories.
func depthAllows(maxDepth *int, depth int) bool {
	return maxDepth == nil || depth < *maxDepth
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if dir[len(dir)-1] == '/' {
		return dir + name
	}
	return dir + "/" + name
}
