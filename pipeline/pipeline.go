package pipeline

import (
	"github.com/skillsenselab/fpipe/errors"
	"github.com/skillsenselab/fpipe/variable"
)

// Pipeline composes steps into one step. Every step runs against the same
// context, in order; the composite's result is the last step's result,
// resolved against the context. An empty pipeline produces nil.
func Pipeline[C any](steps ...Step[C]) Step[C] {
	return func(ctx C) (any, error) {
		var result any
		for _, step := range steps {
			r, err := step(ctx)
			if err != nil {
				return nil, err
			}
			result = r
		}
		return variable.Eval(ctx, result)
	}
}

// RunIn runs the steps as a pipeline against the scope's target, using the
// scope's depth bound for the final resolution. The scope stays open; the
// caller still closes it.
func RunIn[C any](sc *variable.Scope, steps ...Step[C]) (any, error) {
	ctx, ok := sc.Target().(C)
	if !ok {
		return nil, errors.InvalidInput("scope", "scope target does not satisfy the pipeline context type")
	}
	var result any
	for _, step := range steps {
		r, err := step(ctx)
		if err != nil {
			return nil, err
		}
		result = r
	}
	return sc.Eval(result)
}

// Run opens a scope around target, builds the pipeline with build, runs it,
// and closes the scope afterwards.
func Run[C any](target C, build func(*variable.Scope) ([]Step[C], error), opts ...variable.Option) (result any, err error) {
	sc := variable.New(target, opts...)
	defer func() {
		if cerr := sc.Close(); cerr != nil && err == nil {
			result, err = nil, cerr
		}
	}()

	steps, err := build(sc)
	if err != nil {
		return nil, err
	}
	return RunIn(sc, steps...)
}
