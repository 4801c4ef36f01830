package hclspec

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions is the fixed function table for column expressions.
var exprFunctions = map[string]function.Function{
	"abs":      stdlib.AbsoluteFunc,
	"ceil":     stdlib.CeilFunc,
	"floor":    stdlib.FloorFunc,
	"max":      stdlib.MaxFunc,
	"min":      stdlib.MinFunc,
	"pow":      stdlib.PowFunc,
	"log":      stdlib.LogFunc,
	"signum":   stdlib.SignumFunc,
	"int":      stdlib.IntFunc,
	"parseint": stdlib.ParseIntFunc,
	"upper":    stdlib.UpperFunc,
	"lower":    stdlib.LowerFunc,
	"strlen":   stdlib.StrlenFunc,
	"substr":   stdlib.SubstrFunc,
	"format":   stdlib.FormatFunc,
	"join":     stdlib.JoinFunc,
	"concat":   stdlib.ConcatFunc,
	"length":   stdlib.LengthFunc,
	"element":  stdlib.ElementFunc,
	"coalesce": stdlib.CoalesceFunc,
}
