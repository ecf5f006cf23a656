// Package trace wraps functions so that every call is recorded at debug level.
//
// The returned function behaves exactly like the function it wraps: same results, same
// error, same panic. Around the call it logs
//
//	"calling"   func, args
//	"returned"  func, result
//	"raised"    func, error   (non-nil error result)
//	"panicked"  func, panic   (then panics again with the same value)
//
// The WrapIxOy family mirrors the arity of the wrapped function: Ix is the number
// of arguments, O1 a single result, O1E a result plus an error.
package trace

import (
	"reflect"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// FuncName returns the short name of fn, like "pkg.Func" or "pkg.(*T).Method".
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "unknown"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func callLogger(logger *zap.Logger, name string, fn any) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = FuncName(fn)
	}
	return logger.With(zap.String("func", name))
}

func invoke[O any](logger *zap.Logger, args []any, call func() (O, error)) (out O, err error) {
	logger.Debug("calling", zap.Any("args", args))
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("panicked", zap.Any("panic", r))
			panic(r)
		}
	}()

	out, err = call()
	if err != nil {
		logger.Debug("raised", zap.Error(err))
		return out, err
	}
	logger.Debug("returned", zap.Any("result", out))
	return out, nil
}

// WrapI0O1 traces a func() O1. An empty name is replaced by FuncName(fn).
func WrapI0O1[O1 any](logger *zap.Logger, name string, fn func() O1) func() O1 {
	l := callLogger(logger, name, fn)
	return func() O1 {
		out, _ := invoke(l, []any{}, func() (O1, error) {
			return fn(), nil
		})
		return out
	}
}

func WrapI1O1[I1, O1 any](logger *zap.Logger, name string, fn func(I1) O1) func(I1) O1 {
	l := callLogger(logger, name, fn)
	return func(i1 I1) O1 {
		out, _ := invoke(l, []any{i1}, func() (O1, error) {
			return fn(i1), nil
		})
		return out
	}
}

func WrapI2O1[I1, I2, O1 any](logger *zap.Logger, name string, fn func(I1, I2) O1) func(I1, I2) O1 {
	l := callLogger(logger, name, fn)
	return func(i1 I1, i2 I2) O1 {
		out, _ := invoke(l, []any{i1, i2}, func() (O1, error) {
			return fn(i1, i2), nil
		})
		return out
	}
}

func WrapI3O1[I1, I2, I3, O1 any](logger *zap.Logger, name string, fn func(I1, I2, I3) O1) func(I1, I2, I3) O1 {
	l := callLogger(logger, name, fn)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		out, _ := invoke(l, []any{i1, i2, i3}, func() (O1, error) {
			return fn(i1, i2, i3), nil
		})
		return out
	}
}

// WrapI0O1E traces a func() (O1, error); a non-nil error is logged as "raised".
func WrapI0O1E[O1 any](logger *zap.Logger, name string, fn func() (O1, error)) func() (O1, error) {
	l := callLogger(logger, name, fn)
	return func() (O1, error) {
		return invoke(l, []any{}, fn)
	}
}

func WrapI1O1E[I1, O1 any](logger *zap.Logger, name string, fn func(I1) (O1, error)) func(I1) (O1, error) {
	l := callLogger(logger, name, fn)
	return func(i1 I1) (O1, error) {
		return invoke(l, []any{i1}, func() (O1, error) {
			return fn(i1)
		})
	}
}

func WrapI2O1E[I1, I2, O1 any](logger *zap.Logger, name string, fn func(I1, I2) (O1, error)) func(I1, I2) (O1, error) {
	l := callLogger(logger, name, fn)
	return func(i1 I1, i2 I2) (O1, error) {
		return invoke(l, []any{i1, i2}, func() (O1, error) {
			return fn(i1, i2)
		})
	}
}

func WrapI3O1E[I1, I2, I3, O1 any](logger *zap.Logger, name string, fn func(I1, I2, I3) (O1, error)) func(I1, I2, I3) (O1, error) {
	l := callLogger(logger, name, fn)
	return func(i1 I1, i2 I2, i3 I3) (O1, error) {
		return invoke(l, []any{i1, i2, i3}, func() (O1, error) {
			return fn(i1, i2, i3)
		})
	}
}
