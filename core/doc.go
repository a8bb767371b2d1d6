// Package core provides the small foundational types shared by every syren
// package:
//
//   - Cleanup, the disposer returned by every registration
//   - EqualFunc and DefaultEqual, the equality used to gate notifications
//   - NewID, the identifier generator for containers and anonymous listeners
//
// The package intentionally holds no behavior of its own; the event engine,
// pipelines, state cells and containers live in their own packages and only
// agree on these types.
package core
