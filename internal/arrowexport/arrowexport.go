// Package arrowexport converts materialized columns into Arrow record
// batches for the upload layer.
package arrowexport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// Column is one materialized column to export.
type Column struct {
	ID      colid.ID
	Version uint64
	Arity   int
	Values  column.Array
}

func elementDataType(t column.ElementType) (arrow.DataType, error) {
	switch t {
	case column.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case column.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case column.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case column.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case column.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case column.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case column.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case column.String:
		return arrow.BinaryTypes.String, nil
	}
	return nil, fmt.Errorf("no arrow type for element type %s", t)
}

// DataType is the Arrow type of a column with the given element type and
// arity. Arity above one becomes a fixed-size list per component.
func DataType(t column.ElementType, arity int) (arrow.DataType, error) {
	if arity < 1 {
		return nil, fmt.Errorf("arity must be at least 1, got %d", arity)
	}
	elem, err := elementDataType(t)
	if err != nil {
		return nil, err
	}
	if arity == 1 {
		return elem, nil
	}
	return arrow.FixedSizeListOf(int32(arity), elem), nil
}

// ToArrow builds an Arrow array with one slot per component. The caller
// must Release the result.
func ToArrow(mem memory.Allocator, values column.Array, arity int) (arrow.Array, error) {
	dtype, err := DataType(values.Type(), arity)
	if err != nil {
		return nil, err
	}
	if values.Len()%arity != 0 {
		return nil, fmt.Errorf("%d values do not divide into components of arity %d", values.Len(), arity)
	}

	b := array.NewBuilder(mem, dtype)
	defer b.Release()

	if arity == 1 {
		if err := appendValues(b, values); err != nil {
			return nil, err
		}
		return b.NewArray(), nil
	}

	lb := b.(*array.FixedSizeListBuilder)
	for i := 0; i < values.Len()/arity; i++ {
		lb.Append(true)
	}
	if err := appendValues(lb.ValueBuilder(), values); err != nil {
		return nil, err
	}
	return lb.NewArray(), nil
}

func appendValues(b array.Builder, values column.Array) error {
	switch vb := b.(type) {
	case *array.BooleanBuilder:
		v, _ := column.Values[bool](values)
		vb.AppendValues(v, nil)
	case *array.Uint8Builder:
		v, _ := column.Values[uint8](values)
		vb.AppendValues(v, nil)
	case *array.Uint32Builder:
		v, _ := column.Values[uint32](values)
		vb.AppendValues(v, nil)
	case *array.Int32Builder:
		v, _ := column.Values[int32](values)
		vb.AppendValues(v, nil)
	case *array.Int64Builder:
		v, _ := column.Values[int64](values)
		vb.AppendValues(v, nil)
	case *array.Float32Builder:
		v, _ := column.Values[float32](values)
		vb.AppendValues(v, nil)
	case *array.Float64Builder:
		v, _ := column.Values[float64](values)
		vb.AppendValues(v, nil)
	case *array.StringBuilder:
		v, _ := column.Values[string](values)
		vb.AppendValues(v, nil)
	default:
		return fmt.Errorf("unsupported arrow builder %T", b)
	}
	return nil
}

// Record builds a record batch with one field per column. Every column must
// have the same number of components. The caller must Release the result.
func Record(mem memory.Allocator, cols []Column) (arrow.Record, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns to export")
	}

	fields := make([]arrow.Field, 0, len(cols))
	arrays := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	rows := -1
	for _, c := range cols {
		if c.Arity < 1 {
			return nil, fmt.Errorf("column '%s': arity must be at least 1, got %d", c.ID, c.Arity)
		}
		n := c.Values.Len() / c.Arity
		if rows >= 0 && n != rows {
			return nil, fmt.Errorf("column '%s' has %d components, want %d", c.ID, n, rows)
		}
		rows = n

		arr, err := ToArrow(mem, c.Values, c.Arity)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", c.ID, err)
		}
		arrays = append(arrays, arr)
		fields = append(fields, arrow.Field{
			Name: c.ID.Key(),
			Type: arr.DataType(),
			Metadata: arrow.NewMetadata(
				[]string{"class", "name", "version", "arity"},
				[]string{string(c.ID.Class), c.ID.Name, strconv.FormatUint(c.Version, 10), strconv.Itoa(c.Arity)},
			),
		})
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, int64(rows)), nil
}

// WriteIPC writes rec to w as an Arrow IPC stream.
func WriteIPC(w io.Writer, mem memory.Allocator, rec arrow.Record) error {
	writer := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err := writer.Write(rec); err != nil {
		writer.Close()
		return fmt.Errorf("writing arrow record: %w", err)
	}
	return writer.Close()
}
