package segment

import (
	"context"
	"fmt"
)

// Chunk reads source until it is closed and sends its values to sink in
// slices of size. The final slice may be shorter. sink is closed on return.
// A non-positive size returns ErrInvalidSize and leaves both channels untouched.
func Chunk[T any](ctx context.Context, source <-chan T, sink chan<- []T, size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	defer close(sink)

	chunk := make([]T, 0, size)
	flush := func() bool {
		select {
		case sink <- chunk:
			chunk = make([]T, 0, size)
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case v, ok := <-source:
			if !ok {
				if len(chunk) > 0 && !flush() {
					return ctx.Err()
				}
				return nil
			}
			chunk = append(chunk, v)
			if len(chunk) == size && !flush() {
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
