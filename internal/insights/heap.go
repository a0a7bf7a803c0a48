package insights

import "container/heap"

// heapEntry is one element of a bounded per-category min-heap, keyed by
// disk usage so the smallest retained item sits at the root for O(log n)
// eviction when a larger candidate arrives.
type heapEntry struct {
	diskUsage int64
	path      string
	insight   Insight
}

type insightHeap []heapEntry

func (h insightHeap) Len() int            { return len(h) }
func (h insightHeap) Less(i, j int) bool {
	if h[i].diskUsage != h[j].diskUsage {
		return h[i].diskUsage < h[j].diskUsage
	}
	return h[i].path < h[j].path
}
func (h insightHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *insightHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *insightHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// heapPush inserts insight into h, bounded to maxSize entries, deduplicating
// by path. seen tracks the highest disk usage recorded per path so far:
// a new insight for an already-seen path is dropped unless it exceeds that
// high-water mark. Stale lower-usage entries for the same path may remain
// in the heap after a higher one supersedes them; the final extraction
// pass in GenerateInsights filters those out by re-checking path identity
// while walking the heap in descending order.
func heapPush(h *insightHeap, seen map[string]int64, insight Insight, maxSize int) {
	if prevUsage, ok := seen[insight.Path]; ok && insight.DiskUsage <= prevUsage {
		return
	}
	seen[insight.Path] = insight.DiskUsage

	entry := heapEntry{diskUsage: insight.DiskUsage, path: insight.Path, insight: insight}
	if h.Len() < maxSize {
		heap.Push(h, entry)
		return
	}
	if h.Len() > 0 && insight.DiskUsage > (*h)[0].diskUsage {
		heap.Pop(h)
		heap.Push(h, entry)
	}
}
