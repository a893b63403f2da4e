// Package logger provides structured logging for the fpipe library,
// built on zerolog. Library components log through a shared global
// logger by default; embedders can inject their own via SetGlobalLogger
// or per-scope options.
package logger
