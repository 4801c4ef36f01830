package hclspec

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes all top-level blocks of one file.
type fileRoot struct {
	Columns  []*columnBlock  `hcl:"column,block"`
	Datasets []*datasetBlock `hcl:"dataset,block"`
}

type columnBlock struct {
	Class      string         `hcl:"class,label"`
	Name       string         `hcl:"name,label"`
	Type       string         `hcl:"type"`
	Component  string         `hcl:"component"`
	Arity      *int           `hcl:"arity,optional"`
	Filterable *bool          `hcl:"filterable,optional"`
	Version    *int           `hcl:"version,optional"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Value      hcl.Expression `hcl:"value,optional"`
	Fill       hcl.Expression `hcl:"fill,optional"`
	DefRange   hcl.Range      `hcl:",def_range"`
}

type datasetBlock struct {
	Vertices *int        `hcl:"vertices,optional"`
	Edges    *int        `hcl:"edges,optional"`
	Raw      []*rawBlock `hcl:"raw,block"`
	DefRange hcl.Range   `hcl:",def_range"`
}

type rawBlock struct {
	Class    string    `hcl:"class,label"`
	Name     string    `hcl:"name,label"`
	Type     string    `hcl:"type"`
	Arity    *int      `hcl:"arity,optional"`
	Values   cty.Value `hcl:"values"`
	DefRange hcl.Range `hcl:",def_range"`
}

// isAbsent reports whether an optional expression attribute was left out.
// gohcl fills missing hcl.Expression fields with a static null.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
