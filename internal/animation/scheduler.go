package animation

import (
	"sort"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler delivers one-shot frame callbacks.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Scheduler whose callbacks run when the owner calls Fire.
// The owner's loop (a ticker, a bubbletea tick message or a test) decides
// when frames happen, so callbacks always run on the owner's goroutine.
type FrameQueue struct {
	next    FrameID
	pending map[FrameID]func(time.Time)
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]func(time.Time))}
}

func (q *FrameQueue) RequestFrame(fn func(time.Time)) FrameID {
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) { delete(q.pending, id) }

// Pending reports the number of outstanding requests.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Fire runs every callback requested before the call, oldest first. Requests
// made by the callbacks wait for the next Fire. It returns the number of
// callbacks run.
func (q *FrameQueue) Fire(now time.Time) int {
	if len(q.pending) == 0 {
		return 0
	}
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn(now)
		ran++
	}
	return ran
}
