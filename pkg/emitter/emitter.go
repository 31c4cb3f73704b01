// Package emitter provides a small synchronous fan-out primitive used by the
// stores to notify observers of state changes.
//
// Emit takes a snapshot of the current subscriber list under the lock and
// invokes handlers outside of it, so a handler may subscribe or unsubscribe
// (itself or others) without deadlocking. Handlers run synchronously on the
// emitting goroutine, in subscription order.
package emitter

import "sync"

// Token identifies a subscription for later removal.
type Token uint64

// Emitter broadcasts values of type T to all current subscribers.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu   sync.Mutex
	next Token
	subs []subscription[T]
}

type subscription[T any] struct {
	token   Token
	handler func(T)
}

// Subscribe registers a handler and returns a token for Unsubscribe.
func (e *Emitter[T]) Subscribe(handler func(T)) Token {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	e.subs = append(e.subs, subscription[T]{token: e.next, handler: handler})
	return e.next
}

// Unsubscribe removes the subscription identified by token.
// Unknown tokens are ignored.
func (e *Emitter[T]) Unsubscribe(token Token) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subs {
		if s.token == token {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

// Emit delivers v to every subscriber present at the time of the call.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]subscription[T], len(e.subs))
	copy(snapshot, e.subs)
	e.mu.Unlock()

	for _, s := range snapshot {
		s.handler(v)
	}
}

// Len reports the current number of subscribers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
