package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// child under test throughout this file:
//   2 0 3
//   0 5 0

func subsetChild(t *testing.T) *CSR[float64, int] {
	t.Helper()
	c, err := NewCSR[float64, int](2, 3, []int{0, 2, 3}, []int{0, 2, 1}, []float64{2, 3, 5}, true)
	require.NoError(t, err)
	return c
}

func TestDelayedSubsetReorderRows(t *testing.T) {
	child := subsetChild(t)
	sub, err := NewDelayedSubsetUnique[float64, int](child, true, []int{1, 0}, true)
	require.NoError(t, err)

	ext := sub.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{0, 5, 0}, ext.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{2, 0, 3}, ext.Fetch(1, make([]float64, 3)))
}

func TestDelayedSubsetDuplicateRowsDense(t *testing.T) {
	child := subsetChild(t)
	sub, err := NewDelayedSubsetSorted[float64, int](child, true, []int{0, 0}, true)
	require.NoError(t, err)
	assert.Equal(t, subsetSorted, sub.kind)

	rowExt := sub.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{2, 0, 3}, rowExt.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{2, 0, 3}, rowExt.Fetch(1, make([]float64, 3)))

	colExt := sub.DenseColumnFull(DefaultOptions[int]())
	assert.Equal(t, []float64{2, 2}, colExt.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{0, 0}, colExt.Fetch(1, make([]float64, 2)))
	assert.Equal(t, []float64{3, 3}, colExt.Fetch(2, make([]float64, 2)))
}

func TestDelayedSubsetDuplicateRowsSparse(t *testing.T) {
	child := subsetChild(t)
	sub, err := NewDelayedSubsetSorted[float64, int](child, true, []int{0, 0}, true)
	require.NoError(t, err)

	ext := sub.SparseColumnFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 4), make([]int, 4))
	assert.Equal(t, 2, r.Number)
	assert.Equal(t, []float64{2, 2}, r.Value)
	assert.Equal(t, []int{0, 1}, r.Index)
}

func TestDelayedSubsetSortedRejectsUnsorted(t *testing.T) {
	child := subsetChild(t)
	_, err := NewDelayedSubsetSorted[float64, int](child, true, []int{1, 0}, true)
	assert.Error(t, err)
}

func TestDelayedSubsetUniqueRejectsDuplicates(t *testing.T) {
	child := subsetChild(t)
	_, err := NewDelayedSubsetUnique[float64, int](child, true, []int{0, 0}, true)
	assert.Error(t, err)
}

func TestDelayedSubsetSortedUniqueRejectsNonIncreasing(t *testing.T) {
	child := subsetChild(t)
	_, err := NewDelayedSubsetSortedUnique[float64, int](child, true, []int{0, 0}, true)
	assert.Error(t, err)
}

func TestMakeDelayedSubsetClassification(t *testing.T) {
	child := subsetChild(t)

	block := MakeDelayedSubset[float64, int](child, false, []int{1, 2})
	_, isBlock := block.(*DelayedSubsetBlock[float64, int])
	assert.True(t, isBlock, "contiguous run should dispatch to DelayedSubsetBlock")

	sortedUnique := MakeDelayedSubset[float64, int](child, false, []int{0, 2})
	su, ok := sortedUnique.(*DelayedSubset[float64, int])
	require.True(t, ok)
	assert.Equal(t, subsetSortedUnique, su.kind)

	sortedDup := MakeDelayedSubset[float64, int](child, true, []int{0, 0, 1})
	sd, ok := sortedDup.(*DelayedSubset[float64, int])
	require.True(t, ok)
	assert.Equal(t, subsetSorted, sd.kind)

	uniqueUnsorted := MakeDelayedSubset[float64, int](child, true, []int{1, 0})
	uu, ok := uniqueUnsorted.(*DelayedSubset[float64, int])
	require.True(t, ok)
	assert.Equal(t, subsetUnique, uu.kind)

	general := MakeDelayedSubset[float64, int](child, true, []int{1, 1, 0})
	g, ok := general.(*DelayedSubset[float64, int])
	require.True(t, ok)
	assert.Equal(t, subsetGeneral, g.kind)
}

func TestDelayedSubsetBlockMatchesGeneralSubset(t *testing.T) {
	child := subsetChild(t)

	block := NewDelayedSubsetBlock[float64, int](child, false, 1, 2)
	general := NewDelayedSubsetGeneral[float64, int](child, false, []int{1, 2})

	blockExt := block.DenseRowFull(DefaultOptions[int]())
	generalExt := general.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, generalExt.Fetch(0, make([]float64, 2)), blockExt.Fetch(0, make([]float64, 2)))
	assert.Equal(t, generalExt.Fetch(1, make([]float64, 2)), blockExt.Fetch(1, make([]float64, 2)))
}

func TestDelayedSubsetBlockDims(t *testing.T) {
	child := subsetChild(t)
	block := NewDelayedSubsetBlock[float64, int](child, false, 1, 2)
	assert.EqualValues(t, 2, block.NRow())
	assert.EqualValues(t, 2, block.NCol())
}
