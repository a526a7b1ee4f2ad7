package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooleanScalarOps(t *testing.T) {
	child := arithChild(t) // [[1,0],[0,2]]

	and := NewAnd[float64, int](child, 1)
	assert.True(t, and.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(and)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(and)[1])

	or := NewOr[float64, int](child, 0)
	assert.True(t, or.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(or)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(or)[1])

	xor := NewXor[float64, int](child, 1)
	assert.False(t, xor.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(xor)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(xor)[1])

	eq := NewBoolEqual[float64, int](child, 0)
	assert.False(t, eq.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(eq)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(eq)[1])
}

func TestNotAndBoolCast(t *testing.T) {
	child := arithChild(t)

	not := NewNot[float64, int](child)
	assert.False(t, not.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(not)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(not)[1])

	cast := NewBoolCast[float64, int](child)
	assert.True(t, cast.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(cast)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(cast)[1])
}

func TestBooleanBinaryOps(t *testing.T) {
	child := arithChild(t)

	and := NewAndMatrices[float64, int](child, child)
	assert.True(t, and.IsSparse())
	assert.Equal(t, []float64{1, 0}, denseRows(and)[0])
	assert.Equal(t, []float64{0, 1}, denseRows(and)[1])

	zero := NewConstantMatrix[float64, int](2, 2, 0)
	eq := NewBoolEqualMatrices[float64, int](child, zero)
	assert.False(t, eq.IsSparse())
	assert.Equal(t, []float64{0, 1}, denseRows(eq)[0])
	assert.Equal(t, []float64{1, 0}, denseRows(eq)[1])
}
