package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayedTransposeDims(t *testing.T) {
	child := subsetChild(t) // 2x3: [[2,0,3],[0,5,0]]
	tr := NewDelayedTranspose[float64, int](child)
	assert.EqualValues(t, 3, tr.NRow())
	assert.EqualValues(t, 2, tr.NCol())
}

func TestDelayedTransposeDenseRowFull(t *testing.T) {
	child := subsetChild(t)
	tr := NewDelayedTranspose[float64, int](child)
	ext := tr.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{2, 0}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 5}, ext.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{3, 0}, ext.Fetch(2, make([]float64, 2)))
}

func TestDelayedTransposePreferRows(t *testing.T) {
	child := subsetChild(t)
	tr := NewDelayedTranspose[float64, int](child)
	assert.Equal(t, !child.PreferRows(), tr.PreferRows())
}

func TestConstantMatrixDense(t *testing.T) {
	c := NewConstantMatrix[float64, int](2, 3, 7)
	assert.False(t, c.IsSparse())
	ext := c.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{7, 7, 7}, ext.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{7, 7, 7}, ext.Fetch(1, make([]float64, 3)))
}

func TestConstantMatrixZeroIsSparse(t *testing.T) {
	c := NewConstantMatrix[float64, int](2, 2, 0)
	assert.True(t, c.IsSparse())
	ext := c.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 0, r.Number)
}

func TestConstantMatrixSparseBlockAndIndex(t *testing.T) {
	c := NewConstantMatrix[float64, int](2, 4, 3)
	ext := c.SparseRowBlock(1, 2, DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{3, 3}, r.Value)
	assert.Equal(t, []int{0, 1}, r.Index)

	idxExt := c.SparseRowIndex([]int{0, 2}, DefaultOptions[int]())
	r = idxExt.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []int{0, 1}, r.Index)
}
