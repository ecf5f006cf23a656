package helper_test

import (
	"encoding/json"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/on-the-ground/lazy_ive_go/shared/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackTitle string

func TestMakeList(t *testing.T) {
	anyList := []any{1, "two"}
	raw := json.RawMessage(`"ab"`)

	tests := []struct {
		name string
		in   any
		want []any
	}{
		{"scalar", 42, []any{42}},
		{"nil", nil, []any{nil}},
		{"string stays whole", "abc", []any{"abc"}},
		{"bytes stay whole", []byte("ab"), []any{[]byte("ab")}},
		{"named string stays whole", trackTitle("Laser"), []any{trackTitle("Laser")}},
		{"raw json stays whole", raw, []any{raw}},
		{"byte array is split", [2]byte{'a', 'b'}, []any{byte('a'), byte('b')}},
		{"typed slice", []int{1, 2, 3}, []any{1, 2, 3}},
		{"nil typed slice", []int(nil), []any{}},
		{"array", [2]string{"a", "b"}, []any{"a", "b"}},
		{"map keys sorted", map[string]int{"b": 2, "a": 1}, []any{"a", "b"}},
		{"any list", anyList, anyList},
		{"struct", struct{ X int }{1}, []any{struct{ X int }{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helper.MakeList(tt.in))
		})
	}
}

func TestMakeList_Seq(t *testing.T) {
	var seq iter.Seq[any] = func(yield func(any) bool) {
		for _, v := range []any{"x", "y"} {
			if !yield(v) {
				return
			}
		}
	}
	assert.Equal(t, []any{"x", "y"}, helper.MakeList(seq))
}

func TestMakeListOf(t *testing.T) {
	xs, err := helper.MakeListOf[string]("artist")
	require.NoError(t, err)
	assert.Equal(t, []string{"artist"}, xs)

	ys, err := helper.MakeListOf[int]([]any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ys)

	_, err = helper.MakeListOf[int]([]any{1, "2"})
	assert.ErrorContains(t, err, "list element 1")
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)
}

func TestListArg(t *testing.T) {
	join := helper.ListArg(func(xs []string) string {
		return strings.Join(xs, ",")
	})

	assert.Equal(t, "a", join("a"))
	assert.Equal(t, "a,b", join([]string{"a", "b"}))
	assert.Panics(t, func() { join(3) })
}

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = helper.GetTypedValueOf[int](func() (any, error) { return "7", nil })
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)
	assert.ErrorContains(t, err, "got string, want int")

	boom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestMakeListOf_NamedText(t *testing.T) {
	titles, err := helper.MakeListOf[trackTitle](trackTitle("Words"))
	require.NoError(t, err)
	assert.Equal(t, []trackTitle{"Words"}, titles)

	docs, err := helper.MakeListOf[json.RawMessage](json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"a":1}`, string(docs[0]))
}
