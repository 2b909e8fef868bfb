package audioio

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Frame is one fixed-size buffer of raw PCM16 audio (little-endian).
// Ownership transfers into the queue on Push and out on Pop; a frame is
// consumed exactly once.
type Frame []byte

// Queue errors.
var (
	// ErrNoFrame is returned by Pop when no frame arrived within the wait.
	ErrNoFrame = errors.New("audioio: no frame available")

	// ErrQueueClosed is returned once the queue has been closed and drained.
	ErrQueueClosed = errors.New("audioio: queue closed")
)

// FrameQueue is a thread-safe FIFO of captured frames between the capture
// goroutine and the recognition consumer. Push never blocks and never drops;
// the queue grows as needed since a dropped frame corrupts utterance
// boundary detection. Scope one queue per listener, not per process.
type FrameQueue struct {
	mu     sync.Mutex
	frames []Frame
	closed bool
	notify chan struct{}
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		notify: make(chan struct{}, 1),
	}
}

// Push appends a frame. It never blocks. Frames pushed after Close are
// discarded.
func (q *FrameQueue) Push(f Frame) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.frames = append(q.frames, f)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest frame. It blocks up to wait for a
// frame to arrive, returning ErrNoFrame on timeout so the caller can check
// stop and timeout conditions between waits. Cancellation of ctx unblocks
// the wait immediately.
func (q *FrameQueue) Pop(ctx context.Context, wait time.Duration) (Frame, error) {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	for {
		q.mu.Lock()
		if len(q.frames) > 0 {
			f := q.frames[0]
			q.frames = q.frames[1:]
			q.mu.Unlock()
			return f, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrNoFrame
		case <-q.notify:
			// Re-check; a racing Pop may have taken the frame.
		}
	}
}

// Len returns the number of queued frames.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Close marks the queue closed. Queued frames remain poppable; once
// drained, Pop returns ErrQueueClosed.
func (q *FrameQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}
