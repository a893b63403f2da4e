package pipeline

// Not inverts a condition.
func Not[C any](cond Condition[C]) Condition[C] {
	return func(ctx C) (bool, error) {
		b, err := cond(ctx)
		if err != nil {
			return false, err
		}
		return !b, nil
	}
}

// Or is true when any condition holds. Evaluation short-circuits; with no
// conditions the result is false.
func Or[C any](conds ...Condition[C]) Condition[C] {
	return func(ctx C) (bool, error) {
		for _, cond := range conds {
			b, err := cond(ctx)
			if err != nil {
				return false, err
			}
			if b {
				return true, nil
			}
		}
		return false, nil
	}
}

// And is true when all conditions hold. Evaluation short-circuits; with no
// conditions the result is true.
func And[C any](conds ...Condition[C]) Condition[C] {
	return func(ctx C) (bool, error) {
		for _, cond := range conds {
			b, err := cond(ctx)
			if err != nil {
				return false, err
			}
			if !b {
				return false, nil
			}
		}
		return true, nil
	}
}

// If branches on cond: then runs when it holds, otherwise els. Either
// branch may be nil, in which case the step produces nil.
func If[C any](cond Condition[C], then Step[C], els Step[C]) Step[C] {
	return func(ctx C) (any, error) {
		b, err := cond(ctx)
		if err != nil {
			return nil, err
		}
		branch := els
		if b {
			branch = then
		}
		if branch == nil {
			return nil, nil
		}
		return branch(ctx)
	}
}
