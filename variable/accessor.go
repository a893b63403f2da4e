package variable

import (
	"reflect"

	"github.com/skillsenselab/fpipe/errors"
)

// Mapper is implemented by mapping-like context objects that manage their
// own named storage. Context implements it; embedding applications may too.
type Mapper interface {
	Get(name string) (any, bool)
	Put(name string, value any) error
}

// accessor reads and writes a named slot on a context target. Variants are
// selected by the target's runtime shape rather than inheritance: mappings
// are keyed, everything else is a struct field.
type accessor interface {
	get(target any, name string) (any, error)
	set(target any, name string, value any) error
}

// accessorFor picks the accessor variant for a target.
func accessorFor(target any) (accessor, error) {
	if target == nil {
		return nil, errors.InvalidInput("target", "attribute target is nil")
	}
	if _, ok := target.(Mapper); ok {
		return mapperAccessor{}, nil
	}

	rv := reflect.ValueOf(target)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.InvalidInput("target", "attribute target map must have string keys")
		}
		return mapAccessor{}, nil
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return fieldAccessor{}, nil
		}
	case reflect.Struct:
		// Value structs are readable but writes would mutate a copy.
		return nil, errors.InvalidInput("target", "attribute target struct must be a pointer")
	}
	return nil, errors.InvalidInput("target", "attribute target must be a map, Mapper, or struct pointer")
}

// mapperAccessor backs attributes onto a Mapper.
type mapperAccessor struct{}

func (mapperAccessor) get(target any, name string) (any, error) {
	v, ok := target.(Mapper).Get(name)
	if !ok {
		return nil, errors.Unbound(name)
	}
	return v, nil
}

func (mapperAccessor) set(target any, name string, value any) error {
	return target.(Mapper).Put(name, value)
}

// mapAccessor backs attributes onto string-keyed maps.
type mapAccessor struct{}

func (mapAccessor) get(target any, name string) (any, error) {
	rv := reflect.ValueOf(target)
	v := rv.MapIndex(reflect.ValueOf(name))
	if !v.IsValid() {
		return nil, errors.Unbound(name)
	}
	return v.Interface(), nil
}

func (mapAccessor) set(target any, name string, value any) error {
	rv := reflect.ValueOf(target)
	elem := rv.Type().Elem()
	vv, ok := valueFor(value, elem)
	if !ok {
		return errors.InvalidInput(name, "value does not fit the target map's element type")
	}
	rv.SetMapIndex(reflect.ValueOf(name), vv)
	return nil
}

// fieldAccessor backs attributes onto exported struct fields.
type fieldAccessor struct{}

func (fieldAccessor) get(target any, name string) (any, error) {
	field := reflect.ValueOf(target).Elem().FieldByName(fieldName(name))
	if !field.IsValid() {
		return nil, errors.InvalidInput(name, "context has no such field")
	}
	return field.Interface(), nil
}

func (fieldAccessor) set(target any, name string, value any) error {
	field := reflect.ValueOf(target).Elem().FieldByName(fieldName(name))
	if !field.IsValid() {
		return errors.InvalidInput(name, "context has no such field")
	}
	if !field.CanSet() {
		return errors.InvalidInput(name, "context field is not settable")
	}
	vv, ok := valueFor(value, field.Type())
	if !ok {
		return errors.InvalidInput(name, "value does not fit the context field's type")
	}
	field.Set(vv)
	return nil
}

// fieldName maps an attribute name to an exported Go field name, so
// attribute("result") reaches the Result field.
func fieldName(name string) string {
	if name == "" {
		return name
	}
	b := []byte(name)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// valueFor adapts value to the wanted type, returning false when the value
// cannot be stored there. nil maps to the zero value of nilable types.
func valueFor(value any, want reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), true
		default:
			return reflect.Value{}, false
		}
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(want) {
		return rv, true
	}
	if rv.Type().ConvertibleTo(want) && compatibleKinds(rv.Type().Kind(), want.Kind()) {
		return rv.Convert(want), true
	}
	return reflect.Value{}, false
}

// compatibleKinds restricts conversions to numeric widening and string
// kinds; arbitrary ConvertibleTo pairs (e.g. int -> string) would corrupt
// values silently.
func compatibleKinds(from, to reflect.Kind) bool {
	return isNumeric(from) && isNumeric(to) || from == reflect.String && to == reflect.String
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
