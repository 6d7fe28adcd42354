package ask

import (
	"context"
	"sync"
)

// Queue runs tasks strictly one after another in submission order.
//
// A task's place in line is fixed when Enqueue is called, and the next task
// starts once the previous one has settled, whether it succeeded, failed or
// panicked. The zero value is ready to use. Each Adapter owns one Queue, so
// sessions of different adapters never wait on each other.
type Queue struct {
	mu   sync.Mutex
	tail chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// reserve appends a slot to the queue. The caller may run once wait is
// closed and must call release exactly once afterwards.
func (q *Queue) reserve() (wait <-chan struct{}, release func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	prev := q.tail
	if prev == nil {
		ready := make(chan struct{})
		close(ready)
		prev = ready
	}
	done := make(chan struct{})
	q.tail = done
	return prev, func() { close(done) }
}

// Enqueue waits for every previously enqueued task to settle, then runs task.
//
// If ctx is cancelled before the task's turn comes, Enqueue returns
// ctx.Err() without running it; later tasks still run in order.
func Enqueue[T any](ctx context.Context, q *Queue, task func(context.Context) (T, error)) (T, error) {
	wait, release := q.reserve()

	select {
	case <-wait:
	case <-ctx.Done():
		go func() {
			<-wait
			release()
		}()
		var zero T
		return zero, ctx.Err()
	}

	defer release()
	return task(ctx)
}
