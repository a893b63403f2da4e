// Package observability provides OpenTelemetry tracing and metrics for
// pipeline execution. Initialization is optional: step wrappers degrade to
// no-ops when no provider is configured.
package observability
