// Package dataframe defines the contract between the computed column engine
// and the graph data store that owns raw per-vertex and per-edge buffers.
//
// The engine never stores raw data itself. Whenever a column identity has no
// registered spec, reads fall through to the Store, and whenever a derived
// column is added the Store is told about it so it can route its own reads of
// that column back to the engine.
package dataframe
