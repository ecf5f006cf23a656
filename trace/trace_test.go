package trace_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/on-the-ground/lazy_ive_go/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func TestWrapI2O1_LogsCallAndResult(t *testing.T) {
	logger, logs := newObserved()
	add := trace.WrapI2O1(logger, "add", func(a, b int) int { return a + b })

	assert.Equal(t, 5, add(2, 3))

	assert.Equal(t, []string{"calling", "returned"}, messages(logs))
	calling := logs.All()[0].ContextMap()
	assert.Equal(t, "add", calling["func"])
	assert.Equal(t, []interface{}{2, 3}, calling["args"])
	assert.EqualValues(t, 5, logs.All()[1].ContextMap()["result"])
}

func TestWrapI1O1E_RaisedErrorIsUnchanged(t *testing.T) {
	logger, logs := newObserved()
	atoi := trace.WrapI1O1E(logger, "atoi", strconv.Atoi)

	n, err := atoi("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = atoi("x")
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)

	assert.Equal(t, []string{"calling", "returned", "calling", "raised"}, messages(logs))
	assert.Contains(t, logs.All()[3].ContextMap()["error"], "invalid syntax")
}

func TestWrapI0O1_PanicIsRepanicked(t *testing.T) {
	logger, logs := newObserved()
	boom := errors.New("boom")
	explode := trace.WrapI0O1(logger, "explode", func() int { panic(boom) })

	assert.PanicsWithValue(t, boom, func() { explode() })
	assert.Equal(t, []string{"calling", "panicked"}, messages(logs))
}

func TestWrap_AllArities(t *testing.T) {
	logger, logs := newObserved()

	assert.Equal(t, "x", trace.WrapI0O1(logger, "", func() string { return "x" })())
	assert.Equal(t, "AB", trace.WrapI1O1(logger, "", strings.ToUpper)("ab"))
	assert.Equal(t, "a-b-c", trace.WrapI3O1(logger, "", func(a, b, c string) string {
		return strings.Join([]string{a, b, c}, "-")
	})("a", "b", "c"))

	v, err := trace.WrapI0O1E(logger, "", func() (int, error) { return 1, nil })()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = trace.WrapI2O1E(logger, "", func(a, b int) (int, error) { return a * b, nil })(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = trace.WrapI3O1E(logger, "", func(a, b, c int) (int, error) { return a + b + c, nil })(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	assert.Len(t, logs.All(), 12)
	assert.Equal(t, "strings.ToUpper", logs.All()[2].ContextMap()["func"])
}

func TestWrap_NilLogger(t *testing.T) {
	double := trace.WrapI1O1(nil, "double", func(i int) int { return i * 2 })
	assert.Equal(t, 8, double(4))
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "strconv.Itoa", trace.FuncName(strconv.Itoa))
	assert.Equal(t, "unknown", trace.FuncName(42))
	assert.Equal(t, "unknown", trace.FuncName((func())(nil)))
}
