// Package scheduler emits an event when a todo's due moment passes, so the
// view can flip its overdue marker without waiting for user input.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

var ErrEngineStopped = errors.New("scheduler: engine stopped")

type DueEvent struct {
	TodoID int64
	DueAt  time.Time
}

// watch is one todo's pending due moment. index is its heap position.
type watch struct {
	ev    DueEvent
	index int
}

type dueHeap []*watch

func (h dueHeap) Len() int { return len(h) }

func (h dueHeap) Less(i, j int) bool {
	if h[i].ev.DueAt.Equal(h[j].ev.DueAt) {
		return h[i].ev.TodoID < h[j].ev.TodoID
	}
	return h[i].ev.DueAt.Before(h[j].ev.DueAt)
}

func (h dueHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *dueHeap) Push(x any) {
	w := x.(*watch)
	w.index = len(*h)
	*h = append(*h, w)
}

func (h *dueHeap) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	w.index = -1
	return w
}

// Engine watches at most one due moment per todo and emits a DueEvent on
// C once it passes. Sends never block; an event the consumer has no room
// for is counted in Dropped.
type Engine struct {
	mu      sync.Mutex
	queue   dueHeap
	byTodo  map[int64]*watch
	out     chan DueEvent
	rearm   chan struct{}
	stop    chan struct{}
	done    chan struct{}
	running bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		byTodo: make(map[int64]*watch),
		out:    make(chan DueEvent, bufferSize),
		rearm:  make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// C is closed once the engine stops.
func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running || e.stopped {
		return
	}
	e.running = true
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	running := e.running
	close(e.stop)
	e.mu.Unlock()
	if running {
		<-e.done
	} else {
		close(e.out)
	}
}

// Replace makes evs the complete set of watched due moments. A todo listed
// more than once keeps its last entry; zero due times are ignored.
func (e *Engine) Replace(evs []DueEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	clear(e.byTodo)
	e.queue = e.queue[:0]
	for _, ev := range evs {
		if ev.DueAt.IsZero() {
			continue
		}
		if w, ok := e.byTodo[ev.TodoID]; ok {
			w.ev = ev
			continue
		}
		w := &watch{ev: ev}
		e.byTodo[ev.TodoID] = w
		e.queue = append(e.queue, w)
	}
	for i, w := range e.queue {
		w.index = i
	}
	heap.Init(&e.queue)

	select {
	case e.rearm <- struct{}{}:
	default:
	}
	return nil
}

// Pending reports how many todos are still being watched.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.byTodo)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if at, ok := e.next(); ok {
			stopTimer(timer)
			timer.Reset(time.Until(at))
			fire = timer.C
		}

		select {
		case <-fire:
			for _, ev := range e.popDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.rearm:
		case <-e.stop:
			return
		}
	}
}

func (e *Engine) next() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].ev.DueAt, true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []DueEvent
	for len(e.queue) > 0 && !e.queue[0].ev.DueAt.After(now) {
		w := heap.Pop(&e.queue).(*watch)
		delete(e.byTodo, w.ev.TodoID)
		out = append(out, w.ev)
	}
	return out
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

// PendingDue returns one event per todo whose due moment is still ahead of now.
func PendingDue(todos []model.Todo, now time.Time) []DueEvent {
	out := make([]DueEvent, 0)
	for _, t := range todos {
		if t.DueDate == nil || !t.DueDate.After(now) {
			continue
		}
		out = append(out, DueEvent{TodoID: t.ID, DueAt: *t.DueDate})
	}
	return out
}
