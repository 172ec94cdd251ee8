// Package notify carries the side-effect half of apply/publish/status-change
// operations: in-app notifications (and best-effort email copies) created in
// the background, never awaited by the triggering request.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one unit of background work. The name shows up in logs when the
// task fails or is dropped.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher is a bounded background work queue. Submit never blocks the
// caller: when the queue is full the task is dropped and logged. Task
// failures are logged and never propagate to the submitting request.
type Dispatcher struct {
	tasks   chan Task
	log     *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(queueSize, workers int, log *slog.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		tasks:   make(chan Task, queueSize),
		log:     log,
		timeout: 30 * time.Second,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := task.Run(ctx); err != nil {
			d.log.Error("background task failed", "task", task.Name, "error", err)
		}
		cancel()
	}
}

// Submit enqueues a task for background execution. Returns false when the
// task was dropped (queue full or dispatcher closed).
func (d *Dispatcher) Submit(task Task) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn("task dropped, dispatcher closed", "task", task.Name)
		return false
	}
	d.mu.Unlock()

	select {
	case d.tasks <- task:
		return true
	default:
		d.log.Warn("task dropped, queue full", "task", task.Name)
		return false
	}
}

// Close stops accepting tasks and waits for queued work to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.tasks)
	d.wg.Wait()
}
