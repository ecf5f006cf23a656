// Package segment splits a sequence into consecutive fixed-size chunks.
//
// A Segmenter consumes its source exactly once. Chunks come out in source order,
// every chunk has the requested size except possibly the last, and once the
// source is exhausted the Segmenter stays exhausted.
//
// A Segmenter is not safe for concurrent use.
package segment

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidSize is returned for chunk sizes below one.
var ErrInvalidSize = errors.New("segment size must be positive")

// Segmenter pulls chunks out of a source sequence.
type Segmenter[T any] struct {
	src  iter.Seq[T]
	size int

	next func() (T, bool)
	stop func()
	done bool
}

// Of returns a Segmenter producing chunks of size elements.
func Of[T any](src iter.Seq[T], size int) (*Segmenter[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Segmenter[T]{src: src, size: size}, nil
}

// Whole yields exactly one segment: src itself, unread and uncopied.
//
// Nothing is pulled from src until the segment is ranged over, so an infinite
// src is fine. A stateful src that was partly consumed elsewhere continues
// from where it stopped. Ranging over the result a second time yields nothing.
func Whole[T any](src iter.Seq[T]) iter.Seq[iter.Seq[T]] {
	yielded := false
	return func(yield func(iter.Seq[T]) bool) {
		if yielded {
			return
		}
		yielded = true
		yield(src)
	}
}

// Next returns the next chunk. ok is false once the source is exhausted.
func (s *Segmenter[T]) Next() (chunk []T, ok bool) {
	if s.done {
		return nil, false
	}

	chunk = make([]T, 0, s.size)
	for len(chunk) < s.size {
		v, more := s.pull()
		if !more {
			break
		}
		chunk = append(chunk, v)
	}
	if len(chunk) == 0 {
		return nil, false
	}
	return chunk, true
}

// All yields the remaining chunks. Ranging over it again after it finished yields nothing.
// Breaking out early leaves the Segmenter open; call Close to release the source.
func (s *Segmenter[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			chunk, ok := s.Next()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// Rest yields the values not yet handed out in a chunk, pulling them one at a
// time from the same source. Breaking out early leaves the Segmenter open, so
// Next and Rest resume after the last value yielded.
func (s *Segmenter[T]) Rest() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := s.pull(); ok; v, ok = s.pull() {
			if !yield(v) {
				return
			}
		}
	}
}

// Close releases the source. Next returns no more chunks afterwards.
func (s *Segmenter[T]) Close() {
	s.done = true
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Segmenter[T]) pull() (T, bool) {
	if s.done {
		var zero T
		return zero, false
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.src)
	}
	v, ok := s.next()
	if !ok {
		s.Close()
	}
	return v, ok
}
