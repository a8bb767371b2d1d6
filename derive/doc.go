// Package derive builds values that follow other containers.
//
//   - Effect runs a function whenever one of its dependencies changes
//   - Computed keeps a signal equal to a function of its dependencies
//   - Select and Selector bind a signal to one part of a container in both
//     directions through an explicit getter/setter pair
//
// Derived signals are disposed by firing "cleanup" on them (Cleanup()).
package derive
