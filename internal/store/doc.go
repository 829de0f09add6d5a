// Package store loads raw paths and locations and persists optimized ones.
//
// Three backends share the Source and Sink interfaces:
//
//   - binary: one file per collection, a short header followed by a payload
//     produced by the serialization package.
//   - xml: the map editor's own XML documents.
//   - sqlite: a single database file holding several named datasets plus a
//     log of optimization runs.
//
// Loading is tolerant. Load wraps a Source and turns a missing or unreadable
// input into an empty collection, logging what happened, so one bad file never
// stops a run.
package store
