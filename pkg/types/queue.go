package types

import (
	"sync"
)

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

func (q *queue[T]) clear() int {
	n := len(q.data)
	clear(q.data)
	q.data = q.data[:0]
	return n
}

// ControlledQueue is a closable FIFO shared by M senders and N receivers.
// Receivers may block on an empty queue or poll it.
type ControlledQueue[T any] struct {
	data     queue[T]
	mu       sync.Mutex
	closed   bool
	signalCh chan struct{}
	stopCh   chan struct{}
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:   make(chan struct{}),
		signalCh: make(chan struct{}, 1),
	}
}

// Close wakes every blocked receiver. Safe to call more than once.
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return
	}
	cq.closed = true
	close(cq.stopCh)
}

// must hold mu
func (cq *ControlledQueue[T]) signal() {
	select {
	case cq.signalCh <- struct{}{}:
	default:
	}
}

// Send returns false if the queue is closed and v was not queued.
func (cq *ControlledQueue[T]) Send(v T) bool {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return false
	}
	cq.data.push(v)
	cq.signal()
	return true
}

// Replace drops every pending item and queues v in their place.
// It reports how many items were dropped, and false if the queue is closed.
func (cq *ControlledQueue[T]) Replace(v T) (dropped int, ok bool) {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	if cq.closed {
		return 0, false
	}
	dropped = cq.data.clear()
	cq.data.push(v)
	cq.signal()
	return dropped, true
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}

// Recv blocks on empty to wait to receive.
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// AttemptRecv returns
//
//	(false, zero, true) on empty, when not blocking
//	(true, v, true) on recv
//	(true, zero, false) on closed
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		cq.mu.Lock()
		if cq.closed {
			cq.mu.Unlock()
			return true, v, false
		}
		if cq.data.len() > 0 {
			break
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.signalCh:
		case <-cq.stopCh:
		}
	}

	v = cq.data.pop()
	// hand the wakeup on to the next receiver
	if cq.data.len() > 0 {
		cq.signal()
	}
	cq.mu.Unlock()
	return true, v, true
}
