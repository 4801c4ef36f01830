// Package dag holds the dependency graph between column identities.
//
// Edges run from a dependency to its dependent, so "what must be invalidated
// when X changes" is a forward walk from X and "can X be removed" is simply
// "does X have any dependents left".
//
// A Graph is not safe for concurrent use. Its owner (the column registry)
// serializes access, and mutations that may fail are staged on a Clone so a
// rejected change never touches the live graph.
package dag
