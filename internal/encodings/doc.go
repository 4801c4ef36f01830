// Package encodings holds the default derived columns every dataset starts
// with: edge weights on the host side, and the render buffers (edge lists,
// per-point edge ranges, colours, sizes, heights) on the local side.
//
// Every constructor returns a fresh *column.Spec, so versions bumped on one
// dataset's registry never leak into another's.
package encodings
