// Package helper holds small conversions shared by the other packages.
package helper

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnexpectedType is returned when a value is not of the requested type.
var ErrUnexpectedType = errors.New("unexpected type")

// GetTypedValueOf asserts the result of getFn to T.
// Getter errors are wrapped; a type mismatch yields ErrUnexpectedType.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %v", ErrUnexpectedType, res, reflect.TypeFor[T]())
	}
	return val, nil
}
