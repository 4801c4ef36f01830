// Package hclspec loads column and dataset definitions written in HCL.
//
// A definition file may contain any number of column blocks and at most one
// dataset block across all loaded files:
//
//	column "localBuffer" "doubledWeight" {
//	  type       = "float32"
//	  component  = "edge"
//	  depends_on = ["hostBuffer:weight"]
//	  value      = deps[0] * 2
//	}
//
//	dataset {
//	  vertices = 3
//	  edges    = 3
//	  raw "hostBuffer" "weight" {
//	    type   = "float32"
//	    values = [1, 2, 3]
//	  }
//	}
//
// A value expression is evaluated once per component with the variables
// deps, index and count in scope. A fill expression is evaluated once per
// materialization with deps and count, and its result is broadcast to every
// component.
package hclspec
