// Package variable implements pipeline placeholders and their scoping.
//
// A placeholder stands in for a value that is produced while a pipeline
// runs: a Variable owns private storage, an Attribute backs onto a field
// or key of an external context object, and a Resource wraps a managed
// acquire/release value. Placeholders are created through a Scope, which
// owns their lifecycle: closing the scope detaches every placeholder it
// created, releasing resources on the way out.
//
// Eval is the value resolver: it substitutes placeholders recursively
// inside arbitrary nested data (slices, arrays, structs, maps, sets) with
// a configurable depth bound, and invokes plain callables with the
// context as their sole argument.
//
// Placeholder equality is identity equality: two variables with the same
// name are distinct unless they are the same object. All placeholders are
// pointer types, so Go's == gives exactly that.
package variable
