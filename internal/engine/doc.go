// Package engine evaluates derived columns.
//
// An Engine reads specs from a registry.Manager and raw data from a
// dataframe.Store. Identities with a registered spec are computed from their
// dependencies, recursively; every other identity is passed through to the
// store. A whole evaluation runs under the registry's read lock, so it sees a
// single consistent set of specs even while other goroutines register or
// remove columns.
//
// Compute functions receive a *column.EvaluationContext and must not call
// back into the Engine or the Manager.
package engine
