package variable

import (
	stderrors "errors"
	"sync"

	"github.com/google/uuid"

	"github.com/skillsenselab/fpipe/errors"
	"github.com/skillsenselab/fpipe/logger"
)

// Scope owns a set of named placeholders tied to a context target. Creating
// the same name twice returns the same placeholder, so separately curried
// steps that name the same variable share its binding. Closing the scope
// releases its resources in reverse acquisition order and detaches every
// placeholder it handed out.
//
// A Scope is safe for concurrent use; the placeholders it returns are not.
type Scope struct {
	mu        sync.Mutex
	id        string
	target    any
	parent    *Scope
	registry  map[string]Placeholder
	resources []*Resource
	maxDepth  int
	closed    bool
	log       *logger.Logger
}

// Option configures a Scope.
type Option func(*Scope)

// WithParent chains the scope under parent for read-only lookups.
func WithParent(parent *Scope) Option {
	return func(s *Scope) { s.parent = parent }
}

// WithLogger overrides the scope's logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Scope) { s.log = log }
}

// WithMaxDepth overrides the depth bound used by Eval and attribute writes.
func WithMaxDepth(depth int) Option {
	return func(s *Scope) { s.maxDepth = depth }
}

// New creates a scope around the given context target. The target may be
// nil for scopes that only hold plain variables.
func New(target any, opts ...Option) *Scope {
	s := &Scope{
		id:       uuid.NewString(),
		target:   target,
		registry: make(map[string]Placeholder),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.GetGlobalLogger()
	}
	s.log = s.log.WithComponent("scope").WithFields(logger.Fields(logger.FieldScope, s.id))
	s.log.Debug("scope opened")
	return s
}

// With opens a scope around target, runs fn, and closes the scope on the
// way out regardless of how fn returns.
func With(target any, fn func(*Scope) error, opts ...Option) (err error) {
	s := New(target, opts...)
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// ID returns the scope's unique identifier.
func (s *Scope) ID() string { return s.id }

// Target returns the context object the scope was opened around.
func (s *Scope) Target() any { return s.target }

// MaxDepth returns the scope's resolution depth bound.
func (s *Scope) MaxDepth() int { return s.maxDepth }

// Variable returns the placeholder registered under name. A miss consults
// ancestor scopes read-only before creating locally, so a child never
// shadows a parent's placeholder by accident. On a closed scope it returns
// a detached variable that fails on every use.
func (s *Scope) Variable(name string) Placeholder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.Warn("variable requested on closed scope", logger.Fields(logger.FieldVariable, name))
		return deadVariable(name)
	}
	if ph, ok := s.lookupLocked(name); ok {
		return ph
	}
	ph := NewVariable(name)
	s.registry[name] = ph
	return ph
}

// Variables returns one placeholder per name, in order.
func (s *Scope) Variables(names ...string) []Placeholder {
	out := make([]Placeholder, len(names))
	for i, name := range names {
		out[i] = s.Variable(name)
	}
	return out
}

// Initialized returns the placeholder registered under name, creating it
// bound to value if none exists yet here or in an ancestor. An existing
// placeholder keeps its current binding.
func (s *Scope) Initialized(name string, value any) Placeholder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.Warn("variable requested on closed scope", logger.Fields(logger.FieldVariable, name))
		return deadVariable(name)
	}
	if ph, ok := s.lookupLocked(name); ok {
		return ph
	}
	ph := NewInitialized(name, value)
	s.registry[name] = ph
	return ph
}

// Attribute returns the placeholder registered under name, creating an
// attribute reference onto the scope's target if none exists yet here or
// in an ancestor.
func (s *Scope) Attribute(name string) Placeholder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.Warn("attribute requested on closed scope", logger.Fields(logger.FieldVariable, name))
		return deadVariable(name)
	}
	if ph, ok := s.lookupLocked(name); ok {
		return ph
	}
	ph := &Attribute{target: s.target, name: name, maxDepth: s.maxDepth}
	s.registry[name] = ph
	return ph
}

// Attributes returns one attribute placeholder per name, in order.
func (s *Scope) Attributes(names ...string) []Placeholder {
	out := make([]Placeholder, len(names))
	for i, name := range names {
		out[i] = s.Attribute(name)
	}
	return out
}

// Resource acquires m and registers the resulting read-only placeholder
// under name. The scope releases it on Close, after resources acquired
// later.
func (s *Scope) Resource(name string, m Managed) (Placeholder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.ClosedScope("resource")
	}
	r, err := newResource(name, m)
	if err != nil {
		s.log.WithError(err).Error("resource acquisition failed", logger.Fields(logger.FieldResource, name))
		return nil, err
	}
	s.registry[name] = r
	s.resources = append(s.resources, r)
	s.log.Debug("resource acquired", logger.Fields(logger.FieldResource, name))
	return r, nil
}

// Lookup finds the placeholder registered under name without creating one,
// consulting parent scopes when this scope has no entry.
func (s *Scope) Lookup(name string) (Placeholder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, errors.ClosedScope("lookup")
	}
	ph, ok := s.lookupLocked(name)
	return ph, ok, nil
}

// lookupLocked checks the local registry, then delegates misses to the
// parent chain read-only. Caller holds s.mu.
func (s *Scope) lookupLocked(name string) (Placeholder, bool) {
	if ph, ok := s.registry[name]; ok {
		return ph, true
	}
	if s.parent != nil {
		if ph, ok, err := s.parent.Lookup(name); err == nil && ok {
			return ph, true
		}
	}
	return nil, false
}

// deadVariable is handed out by getters on a closed scope: reads and
// writes both fail, catching escaped references fast.
func deadVariable(name string) *Variable {
	v := NewVariable(name)
	v.detach()
	return v
}

// Eval resolves value against the scope's target using its depth bound.
func (s *Scope) Eval(value any) (any, error) {
	return EvalDepth(s.target, value, s.maxDepth)
}

// Close releases the scope's resources in reverse acquisition order,
// detaches every placeholder, and empties the registry. Errors from
// individual releases are joined; release still runs for every resource.
// Closing an already-closed scope is a no-op.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.resources) - 1; i >= 0; i-- {
		r := s.resources[i]
		if err := r.close(); err != nil {
			s.log.WithError(err).Error("resource release failed", logger.Fields(logger.FieldResource, r.Name()))
			errs = append(errs, err)
		} else {
			s.log.Debug("resource released", logger.Fields(logger.FieldResource, r.Name()))
		}
	}
	for _, ph := range s.registry {
		ph.detach()
	}
	s.registry = make(map[string]Placeholder)
	s.resources = nil
	s.log.Debug("scope closed")
	return stderrors.Join(errs...)
}
