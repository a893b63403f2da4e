package variable

import (
	"reflect"
)

// DefaultMaxDepth bounds recursive substitution inside nested structures.
// Exceeding the bound silently stops substituting; it is a guard against
// runaway or cyclic structures, not a reported condition.
const DefaultMaxDepth = 10

var (
	anyType = reflect.TypeOf((*any)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Eval resolves placeholders inside value against ctx, recursing into
// nested containers up to the default depth bound.
//
// The value may be a placeholder, a chain of placeholders, a nested
// container mixing placeholders with plain data, or a thunk taking the
// context as its sole argument. Plain data passes through unchanged.
func Eval(ctx any, value any) (any, error) {
	return EvalDepth(ctx, value, DefaultMaxDepth)
}

// EvalDepth is Eval with an explicit depth bound. Each recursion into a
// container element decrements depth; at zero the value is returned
// unchanged, placeholders included.
func EvalDepth(ctx any, value any, depth int) (any, error) {
	// A placeholder resolves regardless of remaining depth, so chains of
	// placeholders pointing at placeholders are followed to the end.
	if ph, ok := value.(Placeholder); ok {
		inner, err := ph.Value()
		if err != nil {
			return nil, err
		}
		return EvalDepth(ctx, inner, depth-1)
	}
	if depth <= 0 {
		return value, nil
	}

	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Set:
		items, err := evalItems(ctx, v.Items(), depth-1)
		if err != nil {
			return nil, err
		}
		return NewSet(items...), nil
	case *FrozenSet:
		items, err := evalItems(ctx, v.Items(), depth-1)
		if err != nil {
			return nil, err
		}
		return NewFrozenSet(items...), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		return evalSlice(ctx, rv, depth-1)
	case reflect.Array:
		return evalArray(ctx, rv, depth-1)
	case reflect.Map:
		return evalMap(ctx, rv, depth-1)
	case reflect.Struct:
		return evalStruct(ctx, rv, depth-1)
	case reflect.Func:
		return callThunk(ctx, rv)
	default:
		return value, nil
	}
}

func evalItems(ctx any, items []any, depth int) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		r, err := EvalDepth(ctx, item, depth)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// evalSlice rebuilds the same slice type when the resolved elements still
// fit its element type, falling back to []any otherwise (placeholders can
// only live in interface-typed slices to begin with).
func evalSlice(ctx any, rv reflect.Value, depth int) (any, error) {
	n := rv.Len()
	resolved := make([]any, n)
	for i := 0; i < n; i++ {
		r, err := EvalDepth(ctx, rv.Index(i).Interface(), depth)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	elem := rv.Type().Elem()
	if !fitsAll(resolved, elem) {
		return resolved, nil
	}
	out := reflect.MakeSlice(rv.Type(), n, n)
	for i, r := range resolved {
		vv, _ := valueFor(r, elem)
		out.Index(i).Set(vv)
	}
	return out.Interface(), nil
}

// evalArray rebuilds the same fixed-size array type, covering tuple-like
// values; if a resolved element no longer fits, the result degrades to a
// slice of any.
func evalArray(ctx any, rv reflect.Value, depth int) (any, error) {
	n := rv.Len()
	resolved := make([]any, n)
	for i := 0; i < n; i++ {
		r, err := EvalDepth(ctx, rv.Index(i).Interface(), depth)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	elem := rv.Type().Elem()
	if !fitsAll(resolved, elem) {
		return resolved, nil
	}
	out := reflect.New(rv.Type()).Elem()
	for i, r := range resolved {
		vv, _ := valueFor(r, elem)
		out.Index(i).Set(vv)
	}
	return out.Interface(), nil
}

// evalMap resolves values only; keys are never resolved.
func evalMap(ctx any, rv reflect.Value, depth int) (any, error) {
	keys := rv.MapKeys()
	resolved := make([]any, len(keys))
	for i, key := range keys {
		r, err := EvalDepth(ctx, rv.MapIndex(key).Interface(), depth)
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	elem := rv.Type().Elem()
	mapType := rv.Type()
	if !fitsAll(resolved, elem) {
		mapType = reflect.MapOf(rv.Type().Key(), anyType)
		elem = anyType
	}
	out := reflect.MakeMapWithSize(mapType, len(keys))
	for i, key := range keys {
		vv, _ := valueFor(resolved[i], elem)
		out.SetMapIndex(key, vv)
	}
	return out.Interface(), nil
}

// evalStruct reconstructs the same record type from resolved field values,
// preserving field order. Structs with unexported fields cannot be rebuilt
// and pass through as opaque values.
func evalStruct(ctx any, rv reflect.Value, depth int) (any, error) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			return rv.Interface(), nil
		}
	}

	out := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		r, err := EvalDepth(ctx, rv.Field(i).Interface(), depth)
		if err != nil {
			return nil, err
		}
		vv, ok := valueFor(r, t.Field(i).Type)
		if !ok {
			// Keep the original field when the resolved value no longer fits.
			vv = rv.Field(i)
		}
		out.Field(i).Set(vv)
	}
	return out.Interface(), nil
}

// callThunk invokes a plain callable with ctx as its sole argument and
// returns the result without further resolution. Functions whose shape
// does not fit pass through as opaque values.
func callThunk(ctx any, rv reflect.Value) (any, error) {
	ft := rv.Type()
	if ft.IsVariadic() || ft.NumIn() != 1 || ft.NumOut() < 1 || ft.NumOut() > 2 {
		return rv.Interface(), nil
	}
	in, ok := valueFor(ctx, ft.In(0))
	if !ok {
		return rv.Interface(), nil
	}
	if ft.NumOut() == 2 && !ft.Out(1).Implements(errType) {
		return rv.Interface(), nil
	}

	out := rv.Call([]reflect.Value{in})
	if len(out) == 2 {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, e
		}
		return out[0].Interface(), nil
	}
	if ft.Out(0).Implements(errType) {
		if e, _ := out[0].Interface().(error); e != nil {
			return nil, e
		}
		return nil, nil
	}
	return out[0].Interface(), nil
}

func fitsAll(values []any, want reflect.Type) bool {
	for _, v := range values {
		if _, ok := valueFor(v, want); !ok {
			return false
		}
	}
	return true
}
