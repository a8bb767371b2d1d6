// Package testutil contains helpers used across tests to reduce boilerplate
// when asserting on log output and building containers with deterministic
// collaborators. They are not intended for production usage.
package testutil
