// Package colid defines the identity of a column attached to a graph dataset.
//
// A column is addressed by the pair (component class, name). The class names
// the storage tier the column lives in: raw attributes owned by the dataframe
// ("point", "edge", or any caller-defined class) or the engine-local derived
// tiers ("hostBuffer", "localBuffer"). The pair has a canonical composite
// string form, "<class>:<name>", which Parse reads back.
package colid
