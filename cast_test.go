package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayedCastDense(t *testing.T) {
	child, err := NewCSR[int32, int](2, 2, []int{0, 1, 2}, []int{0, 1}, []int32{1, 2}, true)
	require.NoError(t, err)

	cast := NewDelayedCast[float64, int, int32, int](child)
	assert.EqualValues(t, 2, cast.NRow())
	assert.EqualValues(t, 2, cast.NCol())

	ext := cast.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{1, 0}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 2}, ext.Fetch(1, make([]float64, 2)))
}

func TestDelayedCastSparse(t *testing.T) {
	child, err := NewCSR[int32, int](2, 2, []int{0, 1, 2}, []int{0, 1}, []int32{1, 2}, true)
	require.NoError(t, err)

	cast := NewDelayedCast[float64, int, int32, int](child)
	ext := cast.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(1, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{2}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestDelayedCastForwardsOracleAcrossIndexTypes(t *testing.T) {
	child, err := NewCSR[int32, int32](2, 2, []int32{0, 1, 2}, []int32{0, 1}, []int32{1, 2}, true)
	require.NoError(t, err)

	cast := NewDelayedCast[float64, int, int32, int32](child)
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{1, 0})
	ext := cast.DenseRowFull(opts)
	i, row := ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 1, i)
	assert.Equal(t, []float64{0, 2}, row)
	i, row = ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 0, i)
	assert.Equal(t, []float64{1, 0}, row)
}
