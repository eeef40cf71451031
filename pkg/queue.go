package pkg

import (
	"errors"
	"fmt"
)

var ErrAlreadyQueued = errors.New("client already queued")

// WaitingQueue holds the ids of clients waiting for a partner in strict
// arrival order. The membership index keeps duplicate checks and removals
// O(1). Not internally locked; the Relay serializes access.
type WaitingQueue struct {
	order  []string
	queued map[string]struct{}
}

func NewWaitingQueue() *WaitingQueue {
	return &WaitingQueue{
		queued: make(map[string]struct{}),
	}
}

func (q *WaitingQueue) Enqueue(id string) error {
	if _, ok := q.queued[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyQueued, id)
	}
	q.order = append(q.order, id)
	q.queued[id] = struct{}{}
	return nil
}

// DequeueTwoOldest removes and returns the two longest-waiting ids. If
// fewer than two clients are waiting it returns false and the queue is
// unchanged.
func (q *WaitingQueue) DequeueTwoOldest() (string, string, bool) {
	if len(q.order) < 2 {
		return "", "", false
	}
	id1, id2 := q.order[0], q.order[1]
	q.order = q.order[2:]
	delete(q.queued, id1)
	delete(q.queued, id2)
	return id1, id2, true
}

// Remove deletes the id from the queue and reports whether it was waiting.
func (q *WaitingQueue) Remove(id string) bool {
	if _, ok := q.queued[id]; !ok {
		return false
	}
	delete(q.queued, id)
	for i, queued := range q.order {
		if queued == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

func (q *WaitingQueue) Len() int {
	return len(q.order)
}
