package live

import "sync"

// Dispatcher decides where subscriber callbacks run.
type Dispatcher interface {
	Dispatch(fn func())
}

type immediate struct{}

func (immediate) Dispatch(fn func()) { fn() }

// Immediate runs callbacks inline on the calling goroutine.
var Immediate Dispatcher = immediate{}

// Queue runs callbacks one at a time, in order, on its own goroutine.
type Queue struct {
	tasks chan func()
	stop  chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewQueue starts a queue with room for size pending callbacks.
func NewQueue(size int) *Queue {
	q := &Queue{
		tasks: make(chan func(), size),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for fn := range q.tasks {
		fn()
	}
}

// Dispatch enqueues fn, blocking while the queue is full. Calls after
// Close are dropped.
func (q *Queue) Dispatch(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending.Add(1)
	q.mu.Unlock()
	defer q.pending.Done()

	select {
	case q.tasks <- fn:
	case <-q.stop:
	}
}

// Close stops accepting callbacks and waits for queued ones to finish.
// A Dispatch blocked on a full queue is released without enqueueing.
func (q *Queue) Close() {
	q.mu.Lock()
	first := !q.closed
	q.closed = true
	q.mu.Unlock()
	if first {
		close(q.stop)
		q.pending.Wait()
		close(q.tasks)
	}
	<-q.done
}
