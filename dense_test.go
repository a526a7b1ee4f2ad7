package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// matrix under test:
//   1 2 3
//   4 5 6

func denseRowChild() *DenseRowMajor[float64, int] {
	return NewDenseRowMajor[float64, int](2, 3, []float64{1, 2, 3, 4, 5, 6})
}

func TestDenseRowMajorDenseRowFull(t *testing.T) {
	d := denseRowChild()
	ext := d.DenseRowFull(DefaultOptions[int]())
	assert.Equal(t, []float64{1, 2, 3}, ext.Fetch(0, make([]float64, 3)))
	assert.Equal(t, []float64{4, 5, 6}, ext.Fetch(1, make([]float64, 3)))
}

func TestDenseRowMajorDenseColumnFull(t *testing.T) {
	d := denseRowChild()
	ext := d.DenseColumnFull(DefaultOptions[int]())
	assert.Equal(t, []float64{1, 4}, ext.Fetch(0, make([]float64, 2)))
	assert.Equal(t, []float64{3, 6}, ext.Fetch(2, make([]float64, 2)))
}

func TestDenseRowMajorSparseRowFullSkipsZeros(t *testing.T) {
	d := NewDenseRowMajor[float64, int](1, 3, []float64{0, 5, 0})
	ext := d.SparseRowFull(DefaultOptions[int]())
	r := ext.Fetch(0, make([]float64, 3), make([]int, 3))
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, []float64{5}, r.Value)
	assert.Equal(t, []int{1}, r.Index)
}

func TestDenseRowMajorDenseRowFullOracularFetchNext(t *testing.T) {
	d := denseRowChild()
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{1, 0})
	ext := d.DenseRowFull(opts)
	i, row := ext.FetchNext(make([]float64, 3))
	assert.EqualValues(t, 1, i)
	assert.Equal(t, []float64{4, 5, 6}, row)
	i, row = ext.FetchNext(make([]float64, 3))
	assert.EqualValues(t, 0, i)
	assert.Equal(t, []float64{1, 2, 3}, row)
}

func TestDenseRowMajorDenseColumnOracularFetchNext(t *testing.T) {
	d := denseRowChild()
	opts := DefaultOptions[int]()
	opts.Oracle = NewSliceOracle[int]([]int{2, 1})
	ext := d.DenseColumnFull(opts)
	i, col := ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 2, i)
	assert.Equal(t, []float64{3, 6}, col)
	i, col = ext.FetchNext(make([]float64, 2))
	assert.EqualValues(t, 1, i)
	assert.Equal(t, []float64{2, 5}, col)
}

func TestDenseColMajorMatchesRowMajorTranspose(t *testing.T) {
	col := NewDenseColMajor[float64, int](3, 2, []float64{1, 2, 3, 4, 5, 6})
	row := denseRowChild()
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, row.At(i, j), col.At(j, i))
		}
	}
}
