// Package sparse provides a uniform, read-only view over two-dimensional
// numeric matrices. Concrete backends (CSR, CSC, fragmented sparse, dense
// row/column major) and delayed wrappers (subset, isometric arithmetic,
// bind, cast, transpose, constant) all implement the same Matrix interface,
// so a consumer written against Matrix works unchanged whether it is handed
// a real backend or an arbitrary stack of delayed operations over one.
//
// Every backend and wrapper also implements gonum.org/v1/gonum/mat.Matrix,
// so values from this package interoperate with the rest of the gonum
// ecosystem (mat.Formatted, conversion to mat.Dense, and so on).
package sparse
