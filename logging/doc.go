// Package logging provides a minimal logging interface and adapters for syren.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the event engine, pipelines and containers use to report recoverable
// conditions. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter and SyrenLogger wrapping Go's structured logging
//   - ZapAdapter wrapping a *zap.Logger
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	count := syren.NewSignal(syren.WithInitial(0), syren.WithLogger[int](logger))
//
// Nothing in syren returns an error for a misused listener or accessor; those
// cases are logged, so tests assert on log output rather than on errors.
package logging
