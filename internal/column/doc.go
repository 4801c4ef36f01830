// Package column describes derived columns: their element type, how many
// values each graph component contributes, which component kind they span,
// what they read, and how they are computed.
//
// # Strategies
//
// A Spec carries exactly one Strategy. Vectorized computes the whole dense
// array in one call; Scalar computes the values of one component at a time.
// Strategy is a closed set, so callers switch on the concrete type rather
// than probing for the presence of a function.
//
// # Arrays
//
// Dense values travel as Array, a fixed-width typed buffer. A single
// component's value is an Array of length Arity, so scalar and multi-valued
// columns share one representation.
//
// # Versions
//
// Every Spec has a monotonic version counter. Only the registry bumps it, and
// a bump means that cached values computed from an earlier version are stale.
package column
