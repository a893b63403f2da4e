package variable

import (
	"github.com/skillsenselab/fpipe/errors"
)

// Managed is an external resource with explicit acquire/release semantics,
// the Go rendition of a context-manager-like object.
type Managed interface {
	// Acquire obtains the resource's value.
	Acquire() (any, error)
	// Release frees the resource. Called exactly once by the owning scope.
	Release() error
}

// managedFunc adapts a value and a release function into a Managed.
type managedFunc struct {
	value   any
	release func() error
}

func (m *managedFunc) Acquire() (any, error) { return m.value, nil }

func (m *managedFunc) Release() error {
	if m.release == nil {
		return nil
	}
	return m.release()
}

// ResourceOf wraps an already-obtained value and its release function as a
// Managed resource.
func ResourceOf(value any, release func() error) Managed {
	return &managedFunc{value: value, release: release}
}

// Resource is a read-only placeholder wrapping a managed resource. The
// resource is acquired at construction; its value is exposed as the
// variable value; scope close releases the resource before detaching.
type Resource struct {
	Variable
	managed  Managed
	released bool
}

// newResource acquires the managed resource and wraps it.
func newResource(name string, m Managed) (*Resource, error) {
	value, err := m.Acquire()
	if err != nil {
		return nil, errors.ResourceFailure(name, "acquire", err)
	}
	r := &Resource{managed: m}
	r.Variable.name = name
	r.Variable.value = value
	r.Variable.bound = true
	return r, nil
}

// Set rejects writes: resource values are read-only.
func (r *Resource) Set(_ any) error {
	return errors.ReadOnly(r.name)
}

// close releases the underlying resource. Safe to call more than once; the
// release itself runs exactly once.
func (r *Resource) close() error {
	if r.released {
		return nil
	}
	r.released = true
	if err := r.managed.Release(); err != nil {
		return errors.ResourceFailure(r.name, "release", err)
	}
	return nil
}
