package pipeline

import (
	"github.com/skillsenselab/fpipe/variable"
)

// Store runs step, resolves its result against the context, and assigns
// the resolved value to the placeholder. The stored value passes through,
// so stored intermediate values can still feed the pipeline's final result.
//
// Assignment goes through the placeholder's Set, so attribute references
// resolve a second time on the way to their target.
func Store[C any](ph variable.Placeholder, step Step[C]) Step[C] {
	return func(ctx C) (any, error) {
		result, err := step(ctx)
		if err != nil {
			return nil, err
		}
		resolved, err := variable.Eval(ctx, result)
		if err != nil {
			return nil, err
		}
		if err := ph.Set(resolved); err != nil {
			return nil, err
		}
		return ph.Value()
	}
}

// StoreValue is Store for a literal or placeholder instead of a step: the
// value is resolved against the context and assigned to the placeholder.
func StoreValue[C any](ph variable.Placeholder, value any) Step[C] {
	return Store[C](ph, func(C) (any, error) {
		return value, nil
	})
}
