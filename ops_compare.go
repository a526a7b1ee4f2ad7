package sparse

// CompareKind selects a relational op (spec §4.8 "Unary comparison").
type CompareKind int

const (
	CmpEqual CompareKind = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessEqual
	CmpGreaterEqual
)

func compareKernel[V Value](kind CompareKind, l, r V) V {
	var result bool
	switch kind {
	case CmpEqual:
		result = l == r
	case CmpNotEqual:
		result = l != r
	case CmpLess:
		result = l < r
	case CmpGreater:
		result = l > r
	case CmpLessEqual:
		result = l <= r
	case CmpGreaterEqual:
		result = l >= r
	default:
		panic("tatami: unknown compare kind")
	}
	if result {
		return V(1)
	}
	return V(0)
}

// comparePreservesZero mirrors spec §4.8: only NOT_EQUAL, < and >
// preserve sparsity, and only when the scalar itself makes the zero
// comparison false (0 != scalar, 0 < scalar, 0 > scalar can each be
// either true or false depending on scalar, so this is evaluated, not
// assumed).
func comparePreservesZero[V Value](kind CompareKind, scalar V, rightSide bool) bool {
	switch kind {
	case CmpNotEqual, CmpLess, CmpGreater:
		var l, r V
		if rightSide {
			r = scalar
		} else {
			l = scalar
		}
		return compareKernel(kind, l, r) == 0
	default:
		return false
	}
}

// compareScalarOp compares every element of a matrix against a fixed
// scalar (spec §4.8 "Unary comparison").
type compareScalarOp[V Value, I Index] struct {
	kind      CompareKind
	scalar    V
	rightSide bool
	sparse    bool
	fill      V
}

func newCompareScalarOp[V Value, I Index](kind CompareKind, scalar V, rightSide bool) *compareScalarOp[V, I] {
	sparse := comparePreservesZero(kind, scalar, rightSide)
	op := &compareScalarOp[V, I]{kind: kind, scalar: scalar, rightSide: rightSide, sparse: sparse}
	if !sparse {
		var l, r V
		if rightSide {
			r = scalar
		} else {
			l = scalar
		}
		op.fill = compareKernel(kind, l, r)
	}
	return op
}

func (op *compareScalarOp[V, I]) apply(v V) V {
	if op.rightSide {
		return compareKernel(op.kind, v, op.scalar)
	}
	return compareKernel(op.kind, op.scalar, v)
}

func (op *compareScalarOp[V, I]) Dense(row bool, i I, positions []I, in, out []V) {
	for k, v := range in {
		out[k] = op.apply(v)
	}
}
func (op *compareScalarOp[V, I]) Sparse(row bool, i I, in Range[V, I], outVal []V) {
	for k := 0; k < in.Number; k++ {
		outVal[k] = op.apply(in.Value[k])
	}
}
func (op *compareScalarOp[V, I]) Fill(row bool, i I) V         { return op.fill }
func (op *compareScalarOp[V, I]) IsSparse() bool                { return op.sparse }
func (op *compareScalarOp[V, I]) ZeroDependsOnRow() bool        { return false }
func (op *compareScalarOp[V, I]) ZeroDependsOnColumn() bool     { return false }
func (op *compareScalarOp[V, I]) NonZeroDependsOnRow() bool     { return false }
func (op *compareScalarOp[V, I]) NonZeroDependsOnColumn() bool  { return false }

func newCompareScalarMatrix[V Value, I Index](child Matrix[V, I], kind CompareKind, scalar V, rightSide bool) *DelayedUnaryIsometric[V, I] {
	return NewDelayedUnaryIsometric[V, I](child, newCompareScalarOp[V, I](kind, scalar, rightSide))
}

// NewEqualScalar, NewNotEqualScalar, NewLessScalar, NewGreaterScalar,
// NewLessEqualScalar and NewGreaterEqualScalar compare every element of
// child against scalar. rightSide selects child OP scalar (true) or
// scalar OP child (false) for the asymmetric relations.
func NewEqualScalar[V Value, I Index](child Matrix[V, I], scalar V) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpEqual, scalar, true)
}
func NewNotEqualScalar[V Value, I Index](child Matrix[V, I], scalar V) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpNotEqual, scalar, true)
}
func NewLessScalar[V Value, I Index](child Matrix[V, I], scalar V, rightSide bool) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpLess, scalar, rightSide)
}
func NewGreaterScalar[V Value, I Index](child Matrix[V, I], scalar V, rightSide bool) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpGreater, scalar, rightSide)
}
func NewLessEqualScalar[V Value, I Index](child Matrix[V, I], scalar V, rightSide bool) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpLessEqual, scalar, rightSide)
}
func NewGreaterEqualScalar[V Value, I Index](child Matrix[V, I], scalar V, rightSide bool) *DelayedUnaryIsometric[V, I] {
	return newCompareScalarMatrix[V, I](child, CmpGreaterEqual, scalar, rightSide)
}

// --- binary comparison (spec §4.8 "Binary versions") ---

type compareBinaryOp[V Value, I Index] struct {
	kind CompareKind
}

func (op compareBinaryOp[V, I]) Dense(row bool, i I, positions []I, left, right, out []V) {
	for k := range left {
		out[k] = compareKernel(op.kind, left[k], right[k])
	}
}
func (op compareBinaryOp[V, I]) Scalar(l, r V) V { return compareKernel(op.kind, l, r) }

// MustHaveBoth is false: a singleton index is still a valid comparison
// against an implicit zero on the missing side.
func (op compareBinaryOp[V, I]) MustHaveBoth() bool { return false }
func (op compareBinaryOp[V, I]) Fill(row bool, i I) V {
	return compareKernel[V](op.kind, 0, 0)
}
func (op compareBinaryOp[V, I]) IsSparse() bool {
	return op.kind == CmpNotEqual || op.kind == CmpLess || op.kind == CmpGreater
}
func (op compareBinaryOp[V, I]) ZeroDependsOnRow() bool       { return false }
func (op compareBinaryOp[V, I]) ZeroDependsOnColumn() bool    { return false }
func (op compareBinaryOp[V, I]) NonZeroDependsOnRow() bool    { return false }
func (op compareBinaryOp[V, I]) NonZeroDependsOnColumn() bool { return false }

// NewEqualMatrices, NewNotEqualMatrices, NewLessMatrices,
// NewGreaterMatrices, NewLessEqualMatrices and NewGreaterEqualMatrices
// compare corresponding entries of left and right.
func NewEqualMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpEqual})
}
func NewNotEqualMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpNotEqual})
}
func NewLessMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpLess})
}
func NewGreaterMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpGreater})
}
func NewLessEqualMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpLessEqual})
}
func NewGreaterEqualMatrices[V Value, I Index](left, right Matrix[V, I]) *DelayedBinaryIsometric[V, I] {
	return NewDelayedBinaryIsometric[V, I](left, right, compareBinaryOp[V, I]{kind: CmpGreaterEqual})
}
