// Package webstorage provides key/value stores with the semantics of browser
// web storage (string keys, string values, insertion ordered) and adapts them
// to state.Provider so containers can persist their value.
//
// Backends hold raw strings:
//
//   - MemoryBackend: process local map, the backing of Session()
//   - DocumentBackend: a single JSON document addressed with gjson/sjson paths,
//     optionally persisted to a file, the backing of Local(path)
//   - sqlite.Backend (subpackage): a table in a SQLite database
//
// A Store encodes values as JSON on write. On read, text that is not valid
// JSON is returned as-is when a string is requested, so values written by
// other tools as plain text remain readable.
//
// Backends are safe for concurrent use; a Store may be shared by several
// containers.
package webstorage
