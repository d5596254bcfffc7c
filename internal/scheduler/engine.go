package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

// Handle is a registered callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

type Scheduler interface {
	// Every runs fn repeatedly with period d until cancelled.
	Every(d time.Duration, fn func()) Handle
	// After runs fn once after d unless cancelled first.
	After(d time.Duration, fn func()) Handle
}

type job struct {
	id       uint64
	at       time.Time
	every    time.Duration
	fn       func()
	canceled bool
	index    int
}

type jobQueue []*job

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].id < q[j].id
	}
	return q[i].at.Before(q[j].at)
}

func (q jobQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *jobQueue) Push(x any) {
	item := x.(*job)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[0 : n-1]
	return item
}

// Engine serves all jobs from a single goroutine, so callbacks never run
// concurrently with each other.
type Engine struct {
	mu      sync.Mutex
	queue   jobQueue
	nextID  uint64
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
}

func NewEngine() *Engine {
	return &Engine{
		queue:  make(jobQueue, 0),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return e.add(d, d, fn)
}

func (e *Engine) After(d time.Duration, fn func()) Handle {
	return e.add(d, 0, fn)
}

// Pending reports the number of live jobs.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) add(delay, every time.Duration, fn func()) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	j := &job{id: e.nextID, at: time.Now().Add(delay), every: every, fn: fn}
	if e.stopped {
		j.canceled = true
		return &engineHandle{e: e, j: j}
	}
	heap.Push(&e.queue, j)
	e.signalWakeup()
	return &engineHandle{e: e, j: j}
}

type engineHandle struct {
	e *Engine
	j *job
}

func (h *engineHandle) Cancel() {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	if h.j.canceled {
		return
	}
	h.j.canceled = true
	if h.j.index >= 0 && h.j.index < len(h.e.queue) && h.e.queue[h.j.index] == h.j {
		heap.Remove(&h.e.queue, h.j.index)
	}
	h.e.signalWakeup()
}

func (e *Engine) loop() {
	defer close(e.doneCh)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				stopTimer(timer)
				return
			}
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, fn := range e.popDue(time.Now()) {
				fn()
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].at, true
}

// popDue removes due jobs and re-arms repeating ones before any callback runs,
// so a callback may cancel its own handle.
func (e *Engine) popDue(now time.Time) []func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]func(), 0)
	for len(e.queue) > 0 {
		next := e.queue[0]
		if next.at.After(now) {
			break
		}
		if next.every > 0 {
			next.at = next.at.Add(next.every)
			if !next.at.After(now) {
				next.at = now.Add(next.every)
			}
			heap.Fix(&e.queue, 0)
		} else {
			heap.Pop(&e.queue)
		}
		out = append(out, e.guard(next))
	}
	return out
}

// guard skips the callback if the job was cancelled after being popped.
func (e *Engine) guard(j *job) func() {
	return func() {
		e.mu.Lock()
		if j.canceled {
			e.mu.Unlock()
			return
		}
		if j.every == 0 {
			j.canceled = true
		}
		e.mu.Unlock()
		j.fn()
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
