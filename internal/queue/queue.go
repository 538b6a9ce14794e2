// Package queue provides an unbounded FIFO of deferred tasks, the minimal
// thing that satisfies the promise package's Scheduler contract. It is a
// queue the host pumps, not an event loop: nothing runs until a caller asks
// for it via Step or Drain.
package queue

import (
	sync "github.com/sasha-s/go-deadlock"
)

// Queue is a FIFO of pending tasks. The zero value is ready to use.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

func New() *Queue {
	return &Queue{}
}

// Schedule appends task to the queue. It never runs task before returning,
// and tasks run in the order they were scheduled, which is exactly the
// contract promises require of their scheduler.
func (q *Queue) Schedule(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.tasks = append(q.tasks, task)
}

// Step runs the oldest pending task and reports whether there was one.
func (q *Queue) Step() bool {
	q.mu.Lock()
	if 0 == len(q.tasks) {
		q.mu.Unlock()
		return false
	}
	task := q.tasks[0]
	q.tasks[0] = nil // release the slot for GC
	q.tasks = q.tasks[1:]
	q.mu.Unlock()

	task()
	return true
}

// Drain runs tasks until none remain, including tasks scheduled by the tasks
// it runs. It returns the number of tasks run.
func (q *Queue) Drain() int {
	n := 0
	for q.Step() {
		n++
	}
	return n
}

// Len returns the number of tasks currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.tasks)
}
