package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareScalarOps(t *testing.T) {
	child := arithChild(t) // [[1,0],[0,2]]

	gt := NewGreaterScalar[float64, int](child, 0, true)
	assert.True(t, gt.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(gt)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(gt)[1])

	lt := NewLessScalar[float64, int](child, 1, true)
	assert.False(t, lt.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(lt)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(lt)[1])

	ne := NewNotEqualScalar[float64, int](child, 0)
	assert.True(t, ne.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(ne)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(ne)[1])
}

func TestCompareBinaryOps(t *testing.T) {
	child := arithChild(t)
	zero := NewConstantMatrix[float64, int](2, 2, 0)

	gt := NewGreaterMatrices[float64, int](child, zero)
	assert.True(t, gt.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(gt)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(gt)[1])

	eq := NewEqualMatrices[float64, int](child, zero)
	assert.False(t, eq.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(eq)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(eq)[1])
}
