package arrowexport

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataType(t *testing.T) {
	dt, err := DataType(column.Float32, 1)
	require.NoError(t, err)
	assert.Equal(t, arrow.FLOAT32, dt.ID())

	dt, err = DataType(column.Uint32, 2)
	require.NoError(t, err)
	require.Equal(t, arrow.FIXED_SIZE_LIST, dt.ID())
	assert.Equal(t, int32(2), dt.(*arrow.FixedSizeListType).Len())

	_, err = DataType(column.InvalidType, 1)
	assert.Error(t, err)
	_, err = DataType(column.Float32, 0)
	assert.Error(t, err)
}

func TestToArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	t.Run("scalar column", func(t *testing.T) {
		arr, err := ToArrow(mem, column.ArrayOf("a", "b"), 1)
		require.NoError(t, err)
		defer arr.Release()
		strs := arr.(*array.String)
		assert.Equal(t, 2, strs.Len())
		assert.Equal(t, "b", strs.Value(1))
	})

	t.Run("arity two", func(t *testing.T) {
		arr, err := ToArrow(mem, column.ArrayOf[uint32](1, 2, 3, 4, 5, 6), 2)
		require.NoError(t, err)
		defer arr.Release()
		list := arr.(*array.FixedSizeList)
		assert.Equal(t, 3, list.Len())
		assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, list.ListValues().(*array.Uint32).Uint32Values())
	})

	t.Run("uneven length", func(t *testing.T) {
		_, err := ToArrow(mem, column.ArrayOf[uint32](1, 2, 3), 2)
		assert.Error(t, err)
	})
}

func TestRecordAndWriteIPC(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cols := []Column{
		{ID: colid.New(colid.HostBuffer, "forwardsEdgeWeights"), Version: 1, Arity: 1, Values: column.ArrayOf[float32](1, 1)},
		{ID: colid.New(colid.LocalBuffer, "edgeColors"), Version: 3, Arity: 2, Values: column.ArrayOf[uint32](7, 8, 9, 10)},
	}
	rec, err := Record(mem, cols)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(2), rec.NumCols())
	field := rec.Schema().Field(1)
	assert.Equal(t, "localBuffer:edgeColors", field.Name)
	idx := field.Metadata.FindKey("version")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "3", field.Metadata.Values()[idx])

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, mem, rec))

	reader, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer reader.Release()
	require.True(t, reader.Next())
	got := reader.Record()
	assert.Equal(t, []float32{1, 1}, got.Column(0).(*array.Float32).Float32Values())
	assert.Equal(t, []uint32{7, 8, 9, 10}, got.Column(1).(*array.FixedSizeList).ListValues().(*array.Uint32).Uint32Values())
	assert.False(t, reader.Next())
}

func TestRecord_Errors(t *testing.T) {
	mem := memory.NewGoAllocator()

	_, err := Record(mem, nil)
	assert.Error(t, err)

	_, err = Record(mem, []Column{
		{ID: colid.New(colid.Point, "a"), Arity: 1, Values: column.ArrayOf[int32](1, 2)},
		{ID: colid.New(colid.Point, "b"), Arity: 1, Values: column.ArrayOf[int32](1)},
	})
	assert.Error(t, err)
}
