package bmc

import (
	"sort"
	"sync"
)

// ReachedHandler is notified once per property, when the property is
// first found reachable.
type ReachedHandler interface {
	Reached(property, bound int)
}

// ReachedFunc adapts a function to a ReachedHandler.
type ReachedFunc func(property, bound int)

// Reached calls f(property, bound).
func (f ReachedFunc) Reached(property, bound int) {
	f(property, bound)
}

type tracker struct {
	mu      sync.RWMutex
	reached []int
	handler ReachedHandler
}

func (t *tracker) add() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reached = append(t.reached, NotReached)
	return len(t.reached) - 1
}

func (t *tracker) record(i, bound int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reached[i] == NotReached {
		t.reached[i] = bound
	}
}

func (t *tracker) at(i int) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.reached) {
		return NotReached, false
	}
	return t.reached[i], true
}

func (t *tracker) unreached() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var is []int
	for i, b := range t.reached {
		if b == NotReached {
			is = append(is, i)
		}
	}
	return is
}

// earliest returns the smallest recorded bound within [min, max].
func (t *tracker) earliest(min, max int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	found := NotFound
	for _, b := range t.reached {
		if b == NotReached || b < min || b > max {
			continue
		}
		if found == NotFound || b < found {
			found = b
		}
	}
	return found
}

func (t *tracker) notify(properties []int, bound int) {
	if t.handler == nil {
		return
	}
	sorted := append([]int(nil), properties...)
	sort.Ints(sorted)
	for _, i := range sorted {
		t.handler.Reached(i, bound)
	}
}

// SetReachedHandler replaces the handler invoked when a property is
// reached. A nil handler disables notification.
func (e *Engine) SetReachedHandler(h ReachedHandler) {
	e.tracker.handler = h
}

// ReachedAt returns the smallest bound at which property i was found
// reachable, or NotReached.
func (e *Engine) ReachedAt(i int) (int, error) {
	b, ok := e.tracker.at(i)
	if !ok {
		return NotReached, usagef("reached at", "no property with index %d", i)
	}
	return b, nil
}
