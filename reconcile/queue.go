package reconcile

import (
	"slices"
	"time"
)

// Scheduler defers work to the UI goroutine. A function passed to After must
// never run inside the call to After.
type Scheduler interface {
	After(d time.Duration, f func())
}

type task struct {
	at  time.Duration
	seq uint64
	f   func()
}

// Queue is a single-threaded Scheduler driven by a manual clock. Nothing runs
// until the owner calls Advance, RunPending or Flush. Functions with equal
// deadlines run in the order they were scheduled.
type Queue struct {
	now   time.Duration
	seq   uint64
	tasks []task
}

// NewQueue returns an empty queue at time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// After implements Scheduler.
func (q *Queue) After(d time.Duration, f func()) {
	if f == nil {
		return
	}
	q.seq++
	q.tasks = append(q.tasks, task{at: q.now + max(d, 0), seq: q.seq, f: f})
}

// Now returns the queue's clock.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Len returns the number of scheduled functions.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Next returns the deadline of the function that runs next.
func (q *Queue) Next() (time.Duration, bool) {
	i := q.next()
	if i < 0 {
		return 0, false
	}
	return q.tasks[i].at, true
}

// Advance moves the clock forward by d, running every function that becomes
// due, including functions scheduled by those functions.
func (q *Queue) Advance(d time.Duration) {
	target := q.now + max(d, 0)
	for {
		i := q.next()
		if i < 0 || q.tasks[i].at > target {
			break
		}
		t := q.tasks[i]
		q.tasks = slices.Delete(q.tasks, i, i+1)
		q.now = t.at
		t.f()
	}
	q.now = target
}

// RunPending runs the functions that are due without moving the clock.
func (q *Queue) RunPending() {
	q.Advance(0)
}

// Flush runs functions until the queue is empty or limit functions have run.
// It returns the number of functions that ran.
func (q *Queue) Flush(limit int) int {
	ran := 0
	for ran < limit {
		i := q.next()
		if i < 0 {
			break
		}
		t := q.tasks[i]
		q.tasks = slices.Delete(q.tasks, i, i+1)
		q.now = max(q.now, t.at)
		t.f()
		ran++
	}
	return ran
}

func (q *Queue) next() int {
	best := -1
	for i, t := range q.tasks {
		if best < 0 || t.at < q.tasks[best].at || (t.at == q.tasks[best].at && t.seq < q.tasks[best].seq) {
			best = i
		}
	}
	return best
}
