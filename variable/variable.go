package variable

import (
	"fmt"

	"github.com/skillsenselab/fpipe/errors"
)

// Variable is a free-standing pipeline placeholder with private storage.
// It must be set before it is read.
type Variable struct {
	name     string
	value    any
	bound    bool
	detached bool
}

// NewVariable creates an unbound variable.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// NewInitialized creates a variable with an initial value already set.
func NewInitialized(name string, value any) *Variable {
	return &Variable{name: name, value: value, bound: true}
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Value returns the current value, or an unbound-variable error if the
// variable was never set or has been detached by its scope.
func (v *Variable) Value() (any, error) {
	if !v.bound {
		return nil, errors.Unbound(v.name)
	}
	return v.value, nil
}

// Set stores a new value. A variable detached by its scope rejects writes.
func (v *Variable) Set(value any) error {
	if v.detached {
		return errors.Unbound(v.name)
	}
	v.value = value
	v.bound = true
	return nil
}

// Call returns the current value; the context is ignored.
func (v *Variable) Call(_ any) (any, error) {
	return v.Value()
}

func (v *Variable) detach() {
	v.value = nil
	v.bound = false
	v.detached = true
}

// String renders the variable as <name=value>, or <name=???> when unbound.
func (v *Variable) String() string {
	if !v.bound {
		return fmt.Sprintf("<%s=???>", v.name)
	}
	return fmt.Sprintf("<%s=%v>", v.name, v.value)
}
