package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matrix under test throughout this file:
//   2 0 3
//   0 5 0

func fragRowChild(t *testing.T) *FragmentedSparseRow[float64, int] {
	t.Helper()
	f, err := NewFragmentedSparseRow[float64, int](2, 3,
		[][]float64{{2, 3}, {5}},
		[][]int{{0, 2}, {1}},
		true)
	require.NoError(t, err)
	return f
}

func TestFragmentedSparseRowDims(t *testing.T) {
	f := fragRowChild(t)
	assert.EqualValues(t, 2, f.NRow())
	assert.EqualValues(t, 3, f.NCol())
	assert.True(t, f.IsSparse())
}

func TestFragmentedSparseRowDenseRowFull(t *testing.T) {
	f := fragRowChild(t)
	ext := f.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{2, 0, 3}, ext.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{0, 5, 0}, ext.Fetch(1, make([]float64, 3)))
}

func TestFragmentedSparseRowSparseRowFull(t *testing.T) {
	f := fragRowChild(t)
	ext := f.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 3), make([]int, 3))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{2, 3}, r.Value)
	assert.Equal(t, []int{0, 2}, r.Index)
}

func TestFragmentedSparseRowDenseColumnFull(t *testing.T) {
	f := fragRowChild(t)
	ext := f.DenseColumnFull(DefaultOptions[int]())
	assert.Equal(t, []float64{2, 0}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 5}, ext.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{3, 0}, ext.Fetch(2, make([]float64, 2)))
}

func TestFragmentedSparseRowSparseColumnFull(t *testing.T) {
	f := fragRowChild(t)
	ext := f.SparseColumnFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{2}, r.Value)
	assert.Equal(t, []int{0}, r.Index)

	r = ext.Fetch(1, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{5}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestFragmentedSparseRowSparseColumnFullReverseOrder(t *testing.T) {
	// Exercise the cache's descending scan path by requesting columns
	// out of ascending order.
	f := fragRowChild(t)
	ext := f.SparseColumnFull(DefaultOptions[int]())
	r2 := ext.Fetch(2, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r2.Number)
	assert.Equal(t, []float64{3}, r2.Value)

	r0 := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r0.Number)
	assert.Equal(t, []float64{2}, r0.Value)
}

func TestFragmentedSparseColTranspose(t *testing.T) {
	f := fragRowChild(t)
	tr := f.T()
	col, ok := tr.(*FragmentedSparseCol[float64, int])
	require.True(t, ok)
	assert.EqualValues(t, 3, col.NRow())
	assert.EqualValues(t, 2, col.NCol())
	assert.Equal(t, f.At(1, 1), col.At(1, 1))
}

func TestFragmentedSparseRowValidateRejectsOutOfRangeIndex(t *testing.T) {
	_, err := NewFragmentedSparseRow[float64, int](1, 2, [][]float64{{1}}, [][]int{{5}}, true)
	assert.Error(t, err)
}

func TestFragmentedSparseRowValidateRejectsNonIncreasing(t *testing.T) {
	_, err := NewFragmentedSparseRow[float64, int](1, 3, [][]float64{{1, 2}}, [][]int{{1, 0}}, true)
	assert.Error(t, err)
}

func TestFragmentedSparseRowDenseRowFullOracularFetchNext(t *testing.T) {
	f := fragRowChild(t)
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{1, 0})
	ext := f.DenseRowFull(opts)
	i, row := ext.FetchNext(make([]float64, 3))
	assert.EqualValues(t, 1, i)
	assert.Equal(t, []float64{0, 5, 0}, row)
	i, row = ext.FetchNext(make([]float64, 3))
	assert.EqualValues(t, 0, i)
	assert.Equal(t, []float64{2, 0, 3}, row)
}
