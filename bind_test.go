package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindChildren(t *testing.T) (*CSR[float64, int], *CSR[float64, int]) {
	t.Helper()
	c1, err := NewCSR[float64, int](1, 3, []int{0, 1}, []int{0}, []float64{1}, true)
	require.NoError(t, err)
	c2, err := NewCSR[float64, int](1, 3, []int{0, 1}, []int{1}, []float64{2}, true)
	require.NoError(t, err)
	return c1, c2
}

func TestDelayedBindRowsDims(t *testing.T) {
	c1, c2 := bindChildren(t)
	b := NewDelayedBind[float64, int](true, c1, c2)
	assert.EqualValues(t, 2, b.NRow())
	assert.EqualValues(t, 3, b.NCol())
}

func TestDelayedBindRowsDenseRowFull(t *testing.T) {
	c1, c2 := bindChildren(t)
	b := NewDelayedBind[float64, int](true, c1, c2)
	ext := b.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{1, 0, 0}, ext.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{0, 2, 0}, ext.Fetch(1, make([]float64, 3)))
}

func TestDelayedBindRowsDenseColumnFull(t *testing.T) {
	c1, c2 := bindChildren(t)
	b := NewDelayedBind[float64, int](true, c1, c2)
	ext := b.DenseColumnFull(DefaultOptions[int]())
	assert.Equal(t, []float64{1, 0}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 2}, ext.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{0, 0}, ext.Fetch(2, make([]float64, 2)))
}

func TestDelayedBindRowsSparseColumnFull(t *testing.T) {
	c1, c2 := bindChildren(t)
	b := NewDelayedBind[float64, int](true, c1, c2)
	ext := b.SparseColumnFull(DefaultOptions[int]())
	r := ext.Fetch(1, make([]float64, 2), make([]int, 2))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{2}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestDelayedBindRowsSparseRowFull(t *testing.T) {
	c1, c2 := bindChildren(t)
	b := NewDelayedBind[float64, int](true, c1, c2)
	ext := b.SparseRowFull(DefaultOptions[int]())
	r0 := ext.Fetch(0, make([]float64, 3), make([]int, 3))
	assert.Equal(t, 1, r0.Number)
	assert.Equal(t, []float64{1}, r0.Value)
	assert.Equal(t, []int{0}, r0.Index)

	r1 := ext.Fetch(1, make([]float64, 3), make([]int, 3))
	assert.Equal(t, 1, r1.Number)
	assert.Equal(t, []float64{2}, r1.Value)
	assert.Equal(t, []int{1}, r1.Index)
}

func TestDelayedBindPanicsOnShapeMismatch(t *testing.T) {
	c1, _ := bindChildren(t)
	other, err := NewCSR[float64, int](1, 4, []int{0, 0}, nil, nil, true)
	require.NoError(t, err)
	assert.Panics(t, func() {
		NewDelayedBind[float64, int](true, c1, other)
	})
}
