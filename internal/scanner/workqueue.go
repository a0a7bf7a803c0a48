package scanner

import "sync"

// task is one unit of work: a directory node to be read, at a known depth
// from the scan root. Depth is tracked alongside the node rather than
// recomputed from Path so the depth gate in the worker loop (§4.D step 4)
// is a plain integer comparison.
type task struct {
	node  *ScanNode
	depth int
}

// workQueue is the MPMC queue workers pull from and push new directory
// tasks onto (§4.C). It is a hand-written bounded-contention structure
// rather than a generic channel-of-channels: channels alone can't express
// the "outstanding count reaches zero" completion signal this queue needs,
// and a condition variable guarding a slice plus a counter is the direct
// port of dux's threading.Lock/Condition/Event trio.
type workQueue struct {
	mu          sync.Mutex
	cond        sync.Cond
	items       []task
	outstanding int
	closed      bool
	drained     chan struct{}
	drainedOnce sync.Once
}

// newWorkQueue returns an empty queue ready to accept tasks.
func newWorkQueue() *workQueue {
	q := &workQueue{drained: make(chan struct{})}
	q.cond.L = &q.mu
	return q
}

// put enqueues a single task, incrementing the outstanding count before the
// task becomes visible to any worker so Join never observes a false "done".
func (q *workQueue) put(t task) {
	q.putMany([]task{t})
}

// putMany enqueues a batch, matching the scanner's pattern of pushing every
// child directory discovered by one ReadDir call in one locked section.
func (q *workQueue) putMany(tasks []task) {
	if len(tasks) == 0 {
		return
	}
	q.mu.Lock()
	q.outstanding += len(tasks)
	q.items = append(q.items, tasks...)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// get blocks until a task is available or the queue is shut down. ok is
// false only once shutdown has been called and no task remains.
func (q *workQueue) get() (t task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return task{}, false
	}
	t = q.items[0]
	q.items = q.items[1:]
	return t, true
}

// taskDone marks one unit of work complete. Once outstanding returns to
// zero, every blocked Join call is released.
func (q *workQueue) taskDone() {
	q.mu.Lock()
	q.outstanding--
	done := q.outstanding == 0
	q.mu.Unlock()
	if done {
		q.drainedOnce.Do(func() { close(q.drained) })
	}
}

// join blocks until outstanding reaches zero, i.e. every task put has had a
// matching taskDone.
func (q *workQueue) join() {
	<-q.drained
}

// shutdown wakes every blocked get, causing them to return ok=false. Scan
// calls this only after join has returned, so shutdown never races a get
// that would otherwise have received a real task.
func (q *workQueue) shutdown() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
