package persist

import (
	"context"
	"log"
	"sync"
	"time"

	"restaurant-floor-backend/internal/floor"
)

// Saver defines the storage the writer hands snapshots to.
type Saver interface {
	SaveSnapshot(ctx context.Context, now time.Time, state floor.State) error
}

// Writer saves floor snapshots in the background, one at a time and in commit
// order. Each snapshot carries the full state, so when the queue is full the
// oldest pending one is dropped in favour of the newest.
type Writer struct {
	mu    sync.Mutex
	jobs  chan floor.State
	saver Saver
	now   func() time.Time
	done  chan struct{}
}

// NewWriter creates a writer with a queue of buffer snapshots.
func NewWriter(saver Saver, buffer int) *Writer {
	if buffer <= 0 {
		buffer = 1
	}
	return &Writer{
		jobs:  make(chan floor.State, buffer),
		saver: saver,
		now:   func() time.Time { return time.Now().UTC() },
		done:  make(chan struct{}),
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled; any
// snapshots still queued are saved first.
func (w *Writer) Start(ctx context.Context) {
	go w.worker(ctx)
}

func (w *Writer) worker(ctx context.Context) {
	defer close(w.done)
	log.Printf("Snapshot writer started")
	for {
		select {
		case state := <-w.jobs:
			w.save(ctx, state)
		case <-ctx.Done():
			w.drain()
			log.Printf("Snapshot writer shutting down")
			return
		}
	}
}

// drain saves whatever is still queued, detached from the cancelled context.
func (w *Writer) drain() {
	for {
		select {
		case state := <-w.jobs:
			w.save(context.Background(), state)
		default:
			return
		}
	}
}

func (w *Writer) save(ctx context.Context, state floor.State) {
	if err := w.saver.SaveSnapshot(ctx, w.now(), state); err != nil {
		log.Printf("Error saving snapshot (%d tables, %d archived orders): %v", len(state.Tables), len(state.Orders), err)
	}
}

// Enqueue queues state for saving without blocking the caller. It is meant to
// be registered with floor.Store.Subscribe.
func (w *Writer) Enqueue(state floor.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		select {
		case w.jobs <- state:
			return
		default:
		}
		select {
		case <-w.jobs:
			log.Printf("Snapshot queue full; dropping an older snapshot")
		default:
		}
	}
}

// Jobs returns the jobs channel for testing.
func (w *Writer) Jobs() chan floor.State {
	return w.jobs
}

// Flush waits for the worker to stop and then saves state synchronously. Call
// it after cancelling the context given to Start.
func (w *Writer) Flush(ctx context.Context, state floor.State) error {
	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return w.saver.SaveSnapshot(ctx, w.now(), state)
}
