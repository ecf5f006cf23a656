package helper

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sort"
)

// MakeList coerces v into a list.
//
//   - []any is returned as is.
//   - other slices and arrays are copied element by element; a nil slice gives an empty list.
//   - text is a scalar, never split into characters or bytes. That covers any
//     string type and any byte slice type, json.RawMessage included.
//   - maps give their keys, ordered by their formatted value.
//   - iter.Seq[any] is drained.
//   - anything else, nil included, is wrapped in a one-element list.
func MakeList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case string, []byte:
		return []any{x}
	case iter.Seq[any]:
		return slices.Collect(x)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return []any{nil}
	}

	switch rv.Kind() {
	case reflect.String:
		return []any{v}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{v}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k.Interface()
		}
		sort.SliceStable(out, func(i, j int) bool {
			return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
		})
		return out
	default:
		return []any{v}
	}
}

// MakeListOf is the typed form of MakeList.
// A []T is returned without copying. Elements that are not a T yield an error.
func MakeListOf[T any](v any) ([]T, error) {
	if xs, ok := v.([]T); ok {
		return xs, nil
	}

	items := MakeList(v)
	out := make([]T, 0, len(items))
	for i, item := range items {
		val, err := GetTypedValueOf[T](func() (any, error) { return item, nil })
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		out = append(out, val)
	}
	return out, nil
}

// ListArg adapts fn so that it accepts a single value or a list of values.
// It panics when an element cannot be converted to T.
func ListArg[T, R any](fn func([]T) R) func(any) R {
	return func(arg any) R {
		xs, err := MakeListOf[T](arg)
		if err != nil {
			panic(err)
		}
		return fn(xs)
	}
}
