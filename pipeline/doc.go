// Package pipeline composes context-threaded steps into runnable
// pipelines.
//
// A Step takes the shared context and returns a value; a Condition returns
// a boolean. Steps are built ahead of time with Curry, which binds
// placeholder arguments that resolve when the step finally runs. Pipeline
// glues steps together, Store routes a step's result into a placeholder,
// and Not, Or, And and If combine conditions into control flow.
package pipeline
