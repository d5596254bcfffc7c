package store

import "sync"

// observable keeps a set of listeners for snapshots of type T.
type observable[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(T)
	order     []int
}

// add registers fn and returns an idempotent function that removes it.
func (o *observable[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.listeners == nil {
		o.listeners = make(map[int]func(T))
	}
	o.nextID++
	id := o.nextID
	o.listeners[id] = fn
	o.order = append(o.order, id)
	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *observable[T]) remove(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.listeners, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of registered listeners.
func (o *observable[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// notify calls listeners in registration order with no lock held, so a
// listener may unsubscribe or call back into the store.
func (o *observable[T]) notify(v T) {
	o.mu.Lock()
	fns := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.listeners[id])
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
