package pipeline

import (
	"fmt"
	"reflect"

	"github.com/skillsenselab/fpipe/errors"
	"github.com/skillsenselab/fpipe/variable"
)

// Step is a unit of pipeline work: it receives the shared context and
// produces a value. Steps are threaded through the same context instance,
// so they communicate through it and through scope placeholders.
type Step[C any] func(ctx C) (any, error)

// Condition is a step that decides instead of producing.
type Condition[C any] func(ctx C) (bool, error)

var pipeErrType = reflect.TypeOf((*error)(nil)).Elem()

// Curry binds arguments to fn ahead of time, producing a step. fn's first
// parameter is the context; the remaining parameters come from args.
// Placeholder arguments stay unresolved until the step runs, at which point
// each one is resolved against the context the step receives.
//
// fn may return (value), (value, error) or just (error). A step whose
// resolved result is still a placeholder fails: that means a placeholder
// escaped its binding.
func Curry[C any](fn any, args ...any) (Step[C], error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, errors.InvalidStep("curry target must be a function")
	}
	ft := fv.Type()
	if err := checkArity(ft, len(args)); err != nil {
		return nil, err
	}
	if err := checkOutputs(ft); err != nil {
		return nil, err
	}

	return func(ctx C) (any, error) {
		in := make([]reflect.Value, 0, len(args)+1)
		ctxVal, err := argValue(ctx, ft.In(0), "ctx")
		if err != nil {
			return nil, err
		}
		in = append(in, ctxVal)

		for i, arg := range args {
			resolved, err := variable.Eval(ctx, arg)
			if err != nil {
				return nil, err
			}
			av, err := argValue(resolved, inType(ft, i+1), fmt.Sprintf("arg %d", i))
			if err != nil {
				return nil, err
			}
			in = append(in, av)
		}

		result, err := callStep(fv, in)
		if err != nil {
			return nil, err
		}
		if ph, ok := result.(variable.Placeholder); ok {
			return nil, errors.Leaked(ph.Name())
		}
		return result, nil
	}, nil
}

// MustCurry is Curry for statically known functions; it panics on the
// construction errors Curry reports.
func MustCurry[C any](fn any, args ...any) Step[C] {
	step, err := Curry[C](fn, args...)
	if err != nil {
		panic(err)
	}
	return step
}

// StepFn turns fn into a step factory: each call binds one set of
// arguments, the way Curry does, and returns the resulting step.
func StepFn[C any](fn any) func(args ...any) (Step[C], error) {
	return func(args ...any) (Step[C], error) {
		return Curry[C](fn, args...)
	}
}

// ConditionFn turns fn into a condition factory. The bound function must
// produce a bool (optionally with an error).
func ConditionFn[C any](fn any) func(args ...any) (Condition[C], error) {
	return func(args ...any) (Condition[C], error) {
		step, err := Curry[C](fn, args...)
		if err != nil {
			return nil, err
		}
		return func(ctx C) (bool, error) {
			result, err := step(ctx)
			if err != nil {
				return false, err
			}
			b, ok := result.(bool)
			if !ok {
				return false, errors.InvalidStep(fmt.Sprintf("condition returned %T, want bool", result))
			}
			return b, nil
		}, nil
	}
}

func checkArity(ft reflect.Type, bound int) error {
	want := bound + 1
	if ft.IsVariadic() {
		if want < ft.NumIn()-1 {
			return errors.InvalidStep(fmt.Sprintf(
				"function takes at least %d arguments after the context, %d bound", ft.NumIn()-2, bound))
		}
		return nil
	}
	if ft.NumIn() == 0 {
		return errors.InvalidStep("function must take the context as its first argument")
	}
	if ft.NumIn() != want {
		return errors.InvalidStep(fmt.Sprintf(
			"function takes %d arguments after the context, %d bound", ft.NumIn()-1, bound))
	}
	return nil
}

func checkOutputs(ft reflect.Type) error {
	switch ft.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if !ft.Out(1).Implements(pipeErrType) {
			return errors.InvalidStep("second return value must be an error")
		}
		return nil
	default:
		return errors.InvalidStep("function returns more than two values")
	}
}

// inType returns the declared type of parameter i, unrolling variadics.
func inType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// callStep invokes the function and normalizes its return shape.
func callStep(fv reflect.Value, in []reflect.Value) (any, error) {
	out := fv.Call(in)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if fv.Type().Out(0).Implements(pipeErrType) {
			if e, _ := out[0].Interface().(error); e != nil {
				return nil, e
			}
			return nil, nil
		}
		return out[0].Interface(), nil
	default:
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
		return out[0].Interface(), nil
	}
}

// argValue adapts value to the parameter type want.
func argValue(value any, want reflect.Type, label string) (reflect.Value, error) {
	if value == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, errors.InvalidStep(fmt.Sprintf("%s: nil does not fit %s", label, want))
		}
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) && numericKind(rv.Kind()) && numericKind(want.Kind()) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, errors.InvalidStep(fmt.Sprintf("%s: %s does not fit %s", label, rv.Type(), want))
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
