// Package inmemoryframe provides a simple, thread-safe, in-memory
// implementation of the dataframe.Store interface.
//
// It holds raw columns as dense arrays together with their per-component
// arity, the current vertex and edge counts, and the list of derived columns
// the engine announced through RegisterDerivedColumn. It is used by the CLI
// and by tests; a production host would back the same interface with its
// own buffers.
package inmemoryframe
