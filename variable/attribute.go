package variable

import (
	"fmt"

	"github.com/skillsenselab/fpipe/errors"
)

// Attribute is a placeholder backed by a field or key on an external
// context object instead of private storage. Reads and writes proxy to the
// target; writes resolve their value first, so assigning a
// placeholder-bearing expression stores the resolved result.
//
// When the owning scope closes, the attribute drops its reference to the
// target but leaves the written value behind on the external object.
type Attribute struct {
	target   any
	name     string
	maxDepth int
}

// NewAttribute creates an attribute reference bound to target.
func NewAttribute(target any, name string) *Attribute {
	return &Attribute{target: target, name: name, maxDepth: DefaultMaxDepth}
}

// Name returns the attribute's name on the target.
func (a *Attribute) Name() string { return a.name }

// Value reads the attribute from the target.
func (a *Attribute) Value() (any, error) {
	if a.target == nil {
		return nil, errors.Unbound(a.name)
	}
	acc, err := accessorFor(a.target)
	if err != nil {
		return nil, err
	}
	return acc.get(a.target, a.name)
}

// Set resolves value against the target and writes it through. The target
// is mutated immediately and durably; closing the scope does not undo it.
func (a *Attribute) Set(value any) error {
	if a.target == nil {
		return errors.Unbound(a.name)
	}
	acc, err := accessorFor(a.target)
	if err != nil {
		return err
	}
	resolved, err := EvalDepth(a.target, value, a.maxDepth)
	if err != nil {
		return err
	}
	return acc.set(a.target, a.name, resolved)
}

// Call returns the current value; the context is ignored in favor of the
// bound target.
func (a *Attribute) Call(_ any) (any, error) {
	return a.Value()
}

func (a *Attribute) detach() {
	a.target = nil
}

// String renders the attribute as @<.name>, marking detached references.
func (a *Attribute) String() string {
	if a.target == nil {
		return fmt.Sprintf("@<####.%s>", a.name)
	}
	return fmt.Sprintf("@<.%s>", a.name)
}
