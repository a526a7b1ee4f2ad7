package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// matrix under test throughout this file:
//   1 0 0 7
//   0 2 4 0
//   3 0 3 6

func testCSR(t *testing.T) *CSR[float64, int] {
	t.Helper()
	c, err := NewCSR[float64, int](3, 4, []int{0, 2, 4, 7}, []int{0, 3, 1, 2, 0, 2, 3}, []float64{1, 7, 2, 4, 3, 3, 6}, true)
	require.NoError(t, err)
	return c
}

func testCSC(t *testing.T) *CSC[float64, int] {
	t.Helper()
	c, err := NewCSC[float64, int](3, 4, []int{0, 2, 3, 5, 7}, []int{0, 2, 1, 1, 2, 0, 2}, []float64{1, 3, 2, 4, 3, 7, 6}, true)
	require.NoError(t, err)
	return c
}

func TestCSRDims(t *testing.T) {
	c := testCSR(t)
	assert.EqualValues(t, 3, c.NRow())
	assert.EqualValues(t, 4, c.NCol())
	assert.Equal(t, 7, c.NNZ())
	assert.True(t, c.IsSparse())
	assert.True(t, c.PreferRows())
}

func TestCSRDenseRowFull(t *testing.T) {
	c := testCSR(t)
	opts := DefaultOptions[int]()
	ext := c.DenseRowFull(opts)
	assert.Equal(t, []float64{1, 0, 0, 7}, ext.Fetch(0, make([]float64, 4)))
	assert.Equal(t, []float64{0, 2, 4, 0}, ext.Fetch(1, make([]float64, 4)))
	assert.Equal(t, []float64{3, 0, 3, 6}, ext.Fetch(2, make([]float64, 4)))
}

func TestCSRDenseRowBlock(t *testing.T) {
	c := testCSR(t)
	ext := c.DenseRowBlock(1, 2, DefaultOptions[int]())
	assert.Equal(t, []float64{0, 0}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{2, 4}, ext.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{0, 3}, ext.Fetch(2, make([]float64, 2)))
}

func TestCSRDenseRowIndex(t *testing.T) {
	c := testCSR(t)
	ext := c.DenseRowIndex([]int{0, 3}, DefaultOptions[int]())
	assert.Equal(t, []float64{1, 7}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 0}, ext.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{3, 6}, ext.Fetch(2, make([]float64, 2)))
}

func TestCSRSparseRowFull(t *testing.T) {
	c := testCSR(t)
	ext := c.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{1, 7}, r.Value)
	assert.Equal(t, []int{0, 3}, r.Index)

	r = ext.Fetch(2, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 3, r.Number)
	assert.Equal(t, []float64{3, 3, 6}, r.Value)
	assert.Equal(t, []int{0, 2, 3}, r.Index)
}

func TestCSRSparseRowBlock(t *testing.T) {
	c := testCSR(t)
	ext := c.SparseRowBlock(1, 2, DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 0, r.Number)

	r = ext.Fetch(1, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{2, 4}, r.Value)
	assert.Equal(t, []int{0, 1}, r.Index)
}

func TestCSRSparseRowIndex(t *testing.T) {
	c := testCSR(t)
	ext := c.SparseRowIndex([]int{0, 2, 3}, DefaultOptions[int]())
	r := ext.Fetch(1, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{4}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestCSRDenseColumnFull(t *testing.T) {
	c := testCSR(t)
	ext := c.DenseColumnFull(DefaultOptions[int]())
	assert.Equal(t, []float64{0, 4, 3}, ext.Fetch(2, make([]float64, 3)))
	assert.Equal(t, []float64{1, 0, 3}, ext.Fetch(0, make([]float64, 3)))
}

func TestCSRSparseColumnFull(t *testing.T) {
	c := testCSR(t)
	ext := c.SparseColumnFull(DefaultOptions[int]())
	r := ext.Fetch(1, make([]float64, 3), make([]int, 3))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{2}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestCSCMatchesCSRTranspose(t *testing.T) {
	csr := testCSR(t)
	csc := testCSC(t)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, csr.At(i, j), csc.At(i, j), "at (%d,%d)", i, j)
		}
	}
	assert.True(t, mat.Equal(csr, csc))
}

func TestCSRTransposeIsCSC(t *testing.T) {
	csr := testCSR(t)
	tr := csr.T()
	csc, ok := tr.(*CSC[float64, int])
	require.True(t, ok)
	assert.EqualValues(t, 4, csc.NRow())
	assert.EqualValues(t, 3, csc.NCol())
	assert.Equal(t, csr.At(1, 2), csc.At(2, 1))
}

func TestCSRValidateRejectsBadPointers(t *testing.T) {
	_, err := NewCSR[float64, int](3, 4, []int{0, 2, 4}, []int{0, 3, 1, 2, 0, 2, 3}, []float64{1, 7, 2, 4, 3, 3, 6}, true)
	assert.Error(t, err)
}

func TestCSRValidateRejectsOutOfRangeIndex(t *testing.T) {
	_, err := NewCSR[float64, int](2, 2, []int{0, 1, 1}, []int{5}, []float64{1}, true)
	assert.Error(t, err)
}

func TestCSRValidateRejectsNonIncreasingIndices(t *testing.T) {
	_, err := NewCSR[float64, int](1, 3, []int{0, 2}, []int{1, 0}, []float64{1, 2}, true)
	assert.Error(t, err)
}

func TestNewCSRFromTriplets(t *testing.T) {
	c, err := NewCSRFromTriplets[float64, int](3, 4,
		[]int{0, 0, 1, 1, 2, 2, 2},
		[]int{0, 3, 1, 2, 0, 2, 3},
		[]float64{1, 7, 2, 4, 3, 3, 6})
	require.NoError(t, err)

	want := testCSR(t)
	assert.EqualValues(t, want.NRow(), c.NRow())
	assert.EqualValues(t, want.NCol(), c.NCol())
	for i := 0; i < 3; i++ {
		assert.Equal(t, denseRowOf[float64, int](want, i), denseRowOf[float64, int](c, i))
	}
}

func TestNewCSRFromTripletsSumsDuplicates(t *testing.T) {
	c, err := NewCSRFromTriplets[float64, int](1, 1, []int{0, 0}, []int{0, 0}, []float64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, float64(5), c.At(0, 0))
	assert.Equal(t, 1, c.NNZ())
}

func TestNewCSCFromTriplets(t *testing.T) {
	c, err := NewCSCFromTriplets[float64, int](2, 2, []int{0, 1}, []int{0, 1}, []float64{4, 9})
	require.NoError(t, err)
	assert.Equal(t, float64(4), c.At(0, 0))
	assert.Equal(t, float64(9), c.At(1, 1))
	assert.Equal(t, float64(0), c.At(0, 1))
}
