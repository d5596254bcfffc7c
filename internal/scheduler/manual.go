package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by Advance. It is meant for
// tests and for headless runs where time is stepped explicitly.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	jobs   map[uint64]*manualJob
}

type manualJob struct {
	id    uint64
	at    time.Duration
	every time.Duration
	fn    func()
}

func NewManual() *Manual {
	return &Manual{jobs: make(map[uint64]*manualJob)}
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) add(delay, every time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.jobs[id] = &manualJob{id: id, at: m.now + delay, every: every, fn: fn}
	return manualHandle{m: m, id: id}
}

type manualHandle struct {
	m  *Manual
	id uint64
}

func (h manualHandle) Cancel() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	delete(h.m.jobs, h.id)
}

// Active reports how many jobs are registered.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// Repeating reports how many registered jobs repeat.
func (m *Manual) Repeating() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, j := range m.jobs {
		if j.every > 0 {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every due job in time
// order. Callbacks run on the caller's goroutine without the lock held.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			delete(m.jobs, next.id)
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
	}
}

func (m *Manual) nextDue(target time.Duration) *manualJob {
	due := make([]*manualJob, 0)
	for _, j := range m.jobs {
		if j.at <= target {
			due = append(due, j)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, k int) bool {
		if due[i].at == due[k].at {
			return due[i].id < due[k].id
		}
		return due[i].at < due[k].at
	})
	return due[0]
}
