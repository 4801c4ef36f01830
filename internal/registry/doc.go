// Package registry owns the set of active column specs for one dataset and
// the dependency graph between them.
//
// A Manager is an explicit value created alongside the dataset it serves;
// there is no package-level registry. It guarantees that
//   - the dependency graph is acyclic after every call,
//   - a rejected registration leaves specs and graph exactly as they were,
//   - registering a column bumps the version of that column and of every
//     column that transitively reads it, each exactly once,
//   - a column cannot be removed while another column still reads it.
//
// All mutations take a single write lock. Lookups take the read lock, and
// Read lets an evaluation hold the read lock across a whole dependency walk
// so it observes one consistent snapshot.
package registry
