// Package scanner implements the parallel directory scanner (§4.C/§4.D/§4.E)
// and the tree primitives over its output (§4.B).
package scanner

import (
	"cmp"
	"container/heap"
	"slices"
)

// Kind identifies whether a ScanNode is a regular file or a directory.
type Kind int8

const (
	// File marks a regular file leaf.
	File Kind = iota
	// Directory marks an entry that may have children.
	Directory
)

// String renders the kind for logging and the TUI.
func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// SortMode controls the order ScanNode.Children is rendered in by the UI.
// Finalization always sorts by disk usage; SortMode is a UI-only re-sort
// layered on top for the browser's sort-toggle key.
type SortMode int8

const (
	// BySize sorts children by descending disk usage (the finalize default).
	BySize SortMode = iota
	// ByName sorts children alphabetically.
	ByName
)

// emptyChildren is the shared, never-mutated children slice for FILE nodes.
// Sharing it avoids a per-file slice allocation across trees with millions
// of files; nothing in this package appends to it. See design note on
// cyclic/shared sentinels.
var emptyChildren = []*ScanNode{}

// ScanNode represents one filesystem entry in the scanned tree (§3).
//
// Path is immutable after creation. Children is appended to only by the
// single worker that read the parent directory (see scanner.go) — no two
// goroutines ever touch the same node's Children concurrently, so no lock
// or atomic is required here. The finalize pass that follows (FinalizeSizes)
// runs single-threaded after every worker has exited.
type ScanNode struct {
	Path string
	Name string
	Kind Kind

	// SizeBytes and DiskUsage are the stat-observed values for FILE nodes at
	// creation time. For DIRECTORY nodes both start at zero and are only
	// populated by FinalizeSizes, once scanning has finished.
	SizeBytes int64
	DiskUsage int64

	Children []*ScanNode

	// Err records an access error reading this node's own directory
	// contents (set only on DIRECTORY nodes whose ReadDir call failed).
	Err error

	// sortGen/sortMode cache which generation/mode Children was last sorted
	// for, so the UI's sort toggle is an O(1) staleness check instead of an
	// O(n) tree walk to reset flags.
	sortGen  uint64
	sortMode SortMode
}

// NewFile constructs a FILE node from stat results.
func NewFile(path, name string, sizeBytes, diskUsage int64) *ScanNode {
	return &ScanNode{
		Path:      path,
		Name:      name,
		Kind:      File,
		SizeBytes: sizeBytes,
		DiskUsage: diskUsage,
		Children:  emptyChildren,
	}
}

// NewDirectory constructs a DIRECTORY node with sizes pending finalization.
func NewDirectory(path, name string) *ScanNode {
	return &ScanNode{
		Path: path,
		Name: name,
		Kind: Directory,
	}
}

// IsDir reports whether this node can have children.
func (n *ScanNode) IsDir() bool {
	return n.Kind == Directory
}

// Size returns the disk-usage figure the UI ranks and displays by.
func (n *ScanNode) Size() int64 {
	return n.DiskUsage
}

// AddSize adjusts DiskUsage and SizeBytes by delta, used to keep ancestor
// totals correct after a node is removed from its parent's Children (the
// browser's delete action) without a full re-finalize pass.
func (n *ScanNode) AddSize(delta int64) {
	n.DiskUsage += delta
	n.SizeBytes += delta
}

// IsSorted reports whether Children is already sorted for the given
// generation/mode pair.
func (n *ScanNode) IsSorted(gen uint64, mode SortMode) bool {
	return n.sortGen == gen && n.sortMode == mode
}

// MarkSorted records that Children is sorted for the given generation/mode.
func (n *ScanNode) MarkSorted(gen uint64, mode SortMode) {
	n.sortGen = gen
	n.sortMode = mode
}

// SortChildren sorts Children in place per mode.
func (n *ScanNode) SortChildren(mode SortMode) {
	switch mode {
	case ByName:
		slices.SortFunc(n.Children, func(a, b *ScanNode) int {
			return cmp.Compare(a.Name, b.Name)
		})
	default:
		slices.SortFunc(n.Children, func(a, b *ScanNode) int {
			return cmp.Compare(b.DiskUsage, a.DiskUsage)
		})
	}
}

// FinalizeSizes performs the two-phase bottom-up aggregation described in
// §4.B: a pre-order walk collects every directory node onto a stack, then
// the stack is drained in reverse (deepest first), summing child sizes and
// sorting children by disk usage descending. The two-phase form avoids
// recursion on trees that are millions of nodes deep.
func FinalizeSizes(root *ScanNode) {
	var stack []*ScanNode
	visit := []*ScanNode{root}
	for len(visit) > 0 {
		node := visit[len(visit)-1]
		visit = visit[:len(visit)-1]
		if !node.IsDir() {
			continue
		}
		stack = append(stack, node)
		visit = append(visit, node.Children...)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		node := stack[i]
		var sizeBytes, diskUsage int64
		for _, child := range node.Children {
			sizeBytes += child.SizeBytes
			diskUsage += child.DiskUsage
		}
		node.SizeBytes = sizeBytes
		node.DiskUsage = diskUsage
		node.SortChildren(BySize)
	}
}

// IterNodes yields every node in the tree rooted at root, depth-first.
func IterNodes(root *ScanNode) func(yield func(*ScanNode) bool) {
	return func(yield func(*ScanNode) bool) {
		stack := []*ScanNode{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(node) {
				return
			}
			stack = append(stack, node.Children...)
		}
	}
}

// topHeapEntry is a min-heap element for TopNodes: the smallest disk usage
// seen sits at the root so eviction is O(log n).
type topHeapEntry struct {
	node *ScanNode
}

type topHeap []topHeapEntry

func (h topHeap) Len() int { return len(h) }
func (h topHeap) Less(i, j int) bool {
	return h[i].node.DiskUsage < h[j].node.DiskUsage
}
func (h topHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topHeap) Push(x interface{}) { *h = append(*h, x.(topHeapEntry)) }
func (h *topHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopNodes returns the n largest nodes by disk usage, excluding root.
// When kindFilter is non-nil, only nodes of that kind are considered.
// Implemented as a streaming min-heap selection so memory stays O(n) in the
// requested count rather than O(n) in tree size.
func TopNodes(root *ScanNode, n int, kindFilter *Kind) []*ScanNode {
	if n <= 0 {
		return nil
	}
	h := &topHeap{}
	heap.Init(h)
	for node := range IterNodes(root) {
		if node == root {
			continue
		}
		if kindFilter != nil && node.Kind != *kindFilter {
			continue
		}
		if h.Len() < n {
			heap.Push(h, topHeapEntry{node})
			continue
		}
		if node.DiskUsage > (*h)[0].node.DiskUsage {
			heap.Pop(h)
			heap.Push(h, topHeapEntry{node})
		}
	}

	out := make([]*ScanNode, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(topHeapEntry).node
	}
	return out
}
