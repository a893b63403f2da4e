package variable

// Placeholder is a named stand-in for a value, resolved at use time.
//
// Implementations live in this package; the unexported detach method keeps
// the lifecycle under scope control.
type Placeholder interface {
	// Name returns the placeholder's name within its scope.
	Name() string
	// Value returns the current value, failing with an unbound-variable
	// error if no value has been set.
	Value() (any, error)
	// Set stores a new value. Resource placeholders reject writes.
	Set(value any) error
	// Call returns the current value, making every placeholder usable as a
	// zero-argument step-like producer. The context argument is unused by
	// plain variables and present for step-shape compatibility.
	Call(ctx any) (any, error)

	// detach drops the placeholder's storage. Called by the owning scope
	// on close; any later use fails with an unbound-variable error.
	detach()
}
