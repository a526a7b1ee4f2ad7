package sparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// child under test throughout this file:
//   1 0
//   0 2

func arithChild(t *testing.T) *CSR[float64, int] {
	t.Helper()
	c, err := NewCSR[float64, int](2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 2}, true)
	require.NoError(t, err)
	return c
}

func denseRows(m Matrix[float64, int]) [][]float64 {
	ext := m.DenseRowFull(DefaultOptions[int]())
	out := make([][]float64, int(m.NRow()))
	for i := range out {
		out[i] = ext.Fetch(i, make([]float64, m.NCol()))
	}
	return out
}

func TestAddScalarIsDense(t *testing.T) {
	m := NewAddScalar[float64, int](arithChild(t), 5)
	assert.False(t, m.IsSparse())
	rows := denseRows(m)
	assert.Equal(t, []float64{6, 5}, rows[0])
	assert.Equal(t, []float64{5, 7}, rows[1])
}

func TestSubtractScalarRightSide(t *testing.T) {
	m := NewSubtractScalar[float64, int](arithChild(t), 1, true)
	rows := denseRows(m)
	assert.Equal(t, []float64{0, -1}, rows[0])
	assert.Equal(t, []float64{-1, 1}, rows[1])
}

func TestSubtractScalarLeftSide(t *testing.T) {
	m := NewSubtractScalar[float64, int](arithChild(t), 1, false)
	rows := denseRows(m)
	assert.Equal(t, []float64{0, 1}, rows[0])
	assert.Equal(t, []float64{1, -1}, rows[1])
}

func TestMultiplyScalarPreservesSparsity(t *testing.T) {
	m := NewMultiplyScalar[float64, int](arithChild(t), 3)
	assert.True(t, m.IsSparse())
	ext := m.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, []float64{3}, r.Value)
	assert.Equal(t, []int{0}, r.Index)
	rows := denseRows(m)
	assert.Equal(t, []float64{3, 0}, rows[0])
	assert.Equal(t, []float64{0, 6}, rows[1])
}

func TestDivideScalarRejectsUnsafeLeftSide(t *testing.T) {
	_, err := NewDivideScalar[int, int](arithChild32(t), 0, false)
	assert.Error(t, err)
}

func arithChild32(t *testing.T) *CSR[int, int] {
	t.Helper()
	c, err := NewCSR[int, int](2, 2, []int{0, 1, 2}, []int{0, 1}, []int{1, 2}, true)
	require.NoError(t, err)
	return c
}

func TestDivideScalarFloatRightSide(t *testing.T) {
	m, err := NewDivideScalar[float64, int](arithChild(t), 2, true)
	require.NoError(t, err)
	rows := denseRows(m)
	assert.Equal(t, []float64{0.5, 0}, rows[0])
	assert.Equal(t, []float64{0, 1}, rows[1])
}

func TestAddVectorAlongRow(t *testing.T) {
	m := NewAddVector[float64, int](arithChild(t), []float64{10, 20}, true)
	rows := denseRows(m)
	assert.Equal(t, []float64{11, 10}, rows[0])
	assert.Equal(t, []float64{20, 22}, rows[1])
}

func TestMultiplyVectorAlongColumnPreservesSparsity(t *testing.T) {
	m := NewMultiplyVector[float64, int](arithChild(t), []float64{2, 3}, false)
	assert.True(t, m.IsSparse())
	rows := denseRows(m)
	assert.Equal(t, []float64{2, 0}, rows[0])
	assert.Equal(t, []float64{0, 6}, rows[1])
}

func TestSubtractVectorRightSide(t *testing.T) {
	m := NewSubtractVector[float64, int](arithChild(t), []float64{1, 1}, true, true)
	rows := denseRows(m)
	assert.Equal(t, []float64{0, -1}, rows[0])
	assert.Equal(t, []float64{-1, 1}, rows[1])
}

func TestAddMatrices(t *testing.T) {
	child := arithChild(t)
	m := NewAddMatrices[float64, int](child, child)
	assert.True(t, m.IsSparse())
	rows := denseRows(m)
	assert.Equal(t, []float64{2, 0}, rows[0])
	assert.Equal(t, []float64{0, 4}, rows[1])
}

func TestMultiplyMatricesSparse(t *testing.T) {
	child := arithChild(t)
	m := NewMultiplyMatrices[float64, int](child, child)
	assert.True(t, m.IsSparse())
	ext := m.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(1, make([]float64, 2), make([]int, 2))
	assert.Equal(t, []float64{4}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestDivideMatricesFloat(t *testing.T) {
	child := arithChild(t)
	m := NewDivideMatrices[float64, int](child, child)
	// Division is never structurally zero-preserving: two implicit zeros
	// divide to NaN, not 0, so the result can't be treated as sparse.
	assert.False(t, m.IsSparse())
	rows := denseRows(m)
	assert.Equal(t, float64(1), rows[0][0])
	assert.True(t, math.IsNaN(rows[0][1]))
	assert.True(t, math.IsNaN(rows[1][0]))
	assert.Equal(t, float64(1), rows[1][1])

	// The sparse path falls back to dense evaluation for the same reason,
	// so it must report the NaN off-diagonal entries rather than skip them.
	ext := m.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, float64(1), r.Value[0])
	assert.True(t, math.IsNaN(r.Value[1]))
}
