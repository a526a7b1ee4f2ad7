package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantMatrixSparseColumnIndexReportsRank(t *testing.T) {
	c := NewConstantMatrix[float64, int](4, 2, 9)
	ext := c.SparseColumnIndex([]int{1, 3}, DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{9, 9}, r.Value)
	assert.Equal(t, []int{0, 1}, r.Index)
}

func TestConstantMatrixDenseOracularFetchNext(t *testing.T) {
	c := NewConstantMatrix[float64, int](3, 2, 4)
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{2, 0, 1})
	ext := c.DenseRowFull(opts)
	i, row := ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 2, i)
	assert.Equal(t, []float64{4, 4}, row)
	i, row = ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 0, i)
	assert.Equal(t, []float64{4, 4}, row)
}

func TestConstantMatrixSparseOracularFetchNextReportsOracleIndex(t *testing.T) {
	c := NewConstantMatrix[float64, int](3, 2, 9)
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{2, 1, 0})
	ext := c.SparseRowFull(opts)
	i, r := ext.FetchNext(make([]float64, 2), make([]int, 2))
	assert.EqualValues(t, 2, i)
	assert.Equal(t, 2, r.Number)
	i, r = ext.FetchNext(make([]float64, 2), make([]int, 2))
	assert.EqualValues(t, 1, i)
	assert.Equal(t, 2, r.Number)
}
