package client

import (
	"context"
	"errors"
	"sync"
)

// State tags a Result.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a fetch: exactly one of loading, ready with
// Data, or failed with Message.
type Result[T any] struct {
	State   State
	Data    T
	Message string
}

// Loader runs a fetch and keeps the latest outcome. A new Load supersedes
// any fetch still in flight; results of superseded fetches are dropped.
type Loader[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	fallback string

	mu      sync.Mutex
	gen     uint64
	current Result[T]
}

// NewLoader wraps fetch. fallback is reported when a failure carries no message.
func NewLoader[T any](fetch func(ctx context.Context) (T, error), fallback string) *Loader[T] {
	return &Loader[T]{
		fetch:    fetch,
		fallback: fallback,
		current:  Result[T]{State: StateLoading},
	}
}

// NewPostsLoader loads the first page of posts.
func NewPostsLoader(c *Client) *Loader[[]Post] {
	return NewLoader(func(ctx context.Context) ([]Post, error) {
		page, err := c.ListPosts(ctx, ListParams{})
		if err != nil {
			return nil, err
		}
		return page.Posts, nil
	}, "Failed to load posts")
}

// NewCategoriesLoader loads every category.
func NewCategoriesLoader(c *Client) *Loader[[]Category] {
	return NewLoader(c.ListCategories, "Failed to load categories")
}

// Load runs the fetch and returns its outcome. If another Load started
// meanwhile, the newer outcome is returned instead.
func (l *Loader[T]) Load(ctx context.Context) Result[T] {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.current = Result[T]{State: StateLoading}
	l.mu.Unlock()

	data, err := l.fetch(ctx)

	var result Result[T]
	if err != nil {
		result = Result[T]{State: StateFailed, Message: l.messageFor(err)}
	} else {
		result = Result[T]{State: StateReady, Data: data}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen == l.gen {
		l.current = result
	}
	return l.current
}

// Reload is Load, named for the manual retry action.
func (l *Loader[T]) Reload(ctx context.Context) Result[T] {
	return l.Load(ctx)
}

// Current returns the latest recorded outcome.
func (l *Loader[T]) Current() Result[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

func (l *Loader[T]) messageFor(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return l.fallback
}
