package pipeline

import (
	"github.com/skillsenselab/fpipe/variable"
)

// List is a step producing a slice of the resolved items.
func List[C any](items ...any) Step[C] {
	return func(ctx C) (any, error) {
		out := make([]any, len(items))
		for i, item := range items {
			r, err := variable.Eval(ctx, item)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}
}

// Dict is a step producing a map of the resolved entry values. Keys pass
// through as written.
func Dict[C any](entries map[string]any) Step[C] {
	return func(ctx C) (any, error) {
		out := make(map[string]any, len(entries))
		for k, v := range entries {
			r, err := variable.Eval(ctx, v)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	}
}

// SetOf is a step producing a set of the resolved items.
func SetOf[C any](items ...any) Step[C] {
	return func(ctx C) (any, error) {
		resolved := make([]any, len(items))
		for i, item := range items {
			r, err := variable.Eval(ctx, item)
			if err != nil {
				return nil, err
			}
			resolved[i] = r
		}
		return variable.NewSet(resolved...), nil
	}
}

// Apply is a step resolving value against the context, useful to surface a
// placeholder or a placeholder-bearing structure as a pipeline result.
func Apply[C any](value any) Step[C] {
	return func(ctx C) (any, error) {
		return variable.Eval(ctx, value)
	}
}
