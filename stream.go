package switchboard

import (
	"iter"
	"sync"
)

// Stream is a lazily pulled sequence of items backed by a live connection.
//
// Items are produced only while the caller ranges over All. Each item carries
// its own error, so a failed item does not end the sequence by itself; the
// producer decides whether more items follow. The underlying connection is
// released when the range loop finishes or breaks, or when Close is called.
// A Stream is single-use.
type Stream[T any] struct {
	seq    iter.Seq2[T, error]
	closer func() error

	once     sync.Once
	closeErr error
}

// NewStream creates a Stream from a sequence and an optional closer.
// The closer runs at most once.
func NewStream[T any](seq iter.Seq2[T, error], closer func() error) *Stream[T] {
	return &Stream[T]{seq: seq, closer: closer}
}

// All returns the stream's items for use in a range loop.
// The stream is closed when the loop ends.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for v, err := range s.seq {
			if !yield(v, err) {
				return
			}
		}
	}
}

// Close releases the underlying connection. It is safe to call more than once.
func (s *Stream[T]) Close() error {
	s.once.Do(func() {
		if s.closer != nil {
			s.closeErr = s.closer()
		}
	})
	return s.closeErr
}

// Collect drains the stream, stopping at the first error.
func (s *Stream[T]) Collect() ([]T, error) {
	var items []T
	for v, err := range s.All() {
		if err != nil {
			return items, err
		}
		items = append(items, v)
	}
	return items, nil
}

// MapStream returns a stream that passes every item of s through fn.
// Closing the returned stream closes s.
func MapStream[T, U any](s *Stream[T], fn func(T, error) (U, error)) *Stream[U] {
	return NewStream(func(yield func(U, error) bool) {
		for v, err := range s.All() {
			if !yield(fn(v, err)) {
				return
			}
		}
	}, s.Close)
}

// StreamOf returns a stream over fixed items. Useful for tests and
// backends that already hold a full response.
func StreamOf[T any](items ...T) *Stream[T] {
	return NewStream(func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}, nil)
}
