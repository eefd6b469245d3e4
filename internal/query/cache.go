// Package query provides a keyed fetch cache with three-state results.
//
// A [Cache] runs at most one fetch per key at a time; concurrent callers for
// the same key share the in-flight execution. Each execution moves the entry
// to [StatusPending] and then exactly once to [StatusSuccess] or
// [StatusFailure]. Data from the last success is kept when a later attempt
// fails, so consumers can keep displaying it next to the error.
package query

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the observable state of a cache entry
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Result is a snapshot of one cache entry
type Result[T any] struct {
	Status Status

	// Data holds the last successful value. HasData reports whether there was one.
	Data    T
	HasData bool

	// Err is the error of the current attempt, nil unless Status is StatusFailure
	Err error

	// UpdatedAt is when Data was last replaced
	UpdatedAt time.Time
}

// Loading reports whether an execution is in flight
func (r Result[T]) Loading() bool { return r.Status == StatusPending }

// Failed reports whether the current attempt failed
func (r Result[T]) Failed() bool { return r.Status == StatusFailure }

// FetchFunc produces the value for a key
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cache deduplicates and tracks fetches by key. The zero value is not usable; use New.
type Cache[T any] struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*Result[T]
	now     func() time.Time
}

// New creates an empty cache
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*Result[T]),
		now:     time.Now,
	}
}

// Fetch executes fn for key unless an execution for key is already running,
// in which case it waits for that one. The shared execution is detached from
// the cancellation of ctx; a caller whose ctx ends returns ctx.Err() early.
func (c *Cache[T]) Fetch(ctx context.Context, key string, fn FetchFunc[T]) (T, error) {
	shared := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		c.begin(key)

		v, err := fn(shared)
		c.finish(key, v, err)

		return v, err
	})

	select {
	case res := <-ch:
		v, _ := res.Val.(T)
		return v, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Get returns the current state for key. Unknown keys report StatusPending with no data.
func (c *Cache[T]) Get(key string) Result[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.entries[key]; ok {
		return *e
	}

	return Result[T]{Status: StatusPending}
}

// Invalidate drops key so the next fetch starts without cached data
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Cache[T]) begin(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &Result[T]{}
		c.entries[key] = e
	}

	e.Status = StatusPending
	e.Err = nil
}

func (c *Cache[T]) finish(key string, v T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		// invalidated while in flight
		e = &Result[T]{}
		c.entries[key] = e
	}

	if err != nil {
		e.Status = StatusFailure
		e.Err = err

		return
	}

	e.Status = StatusSuccess
	e.Data = v
	e.HasData = true
	e.Err = nil
	e.UpdatedAt = c.now()
}
