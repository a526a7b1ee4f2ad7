package sparse

import "github.com/jbowman-labs/tatami/internal/scratch"

// NewCSRFromTriplets builds a CSR matrix from row, col, data triplets (the
// coordinate, or "COO", construction style), summing duplicate coordinates.
// The counting-sort compress/dedupe pair is adapted from the teacher's own
// COO-to-CSR conversion in coordinate.go.
func NewCSRFromTriplets[V Value, I Index](nrow, ncol int, row []int, col []I, data []V) (*CSR[V, I], error) {
	pointers, ind, vals := compressTriplets[V, I](row, col, data, nrow)
	ind2, vals2 := dedupeTriplets[V, I](pointers, ind, vals, nrow, ncol)
	return NewCSR[V, I](nrow, ncol, pointers, ind2, vals2, true)
}

// NewCSCFromTriplets is the column-major counterpart: row and col play
// opposite roles relative to NewCSRFromTriplets, since columns are the
// primary dimension of a CSC matrix.
func NewCSCFromTriplets[V Value, I Index](nrow, ncol int, row []I, col []int, data []V) (*CSC[V, I], error) {
	pointers, ind, vals := compressTriplets[V, I](col, row, data, ncol)
	ind2, vals2 := dedupeTriplets[V, I](pointers, ind, vals, ncol, nrow)
	return NewCSC[V, I](nrow, ncol, pointers, ind2, vals2, true)
}

func cumsum(p []int, c []int, n int) int {
	nz := 0
	for i := 0; i < n; i++ {
		p[i] = nz
		nz += c[i]
		c[i] = p[i]
	}
	p[n] = nz
	return nz
}

// compressTriplets scatters (primary, secondary, value) triplets into
// pointer/index/value arrays grouped by primary element, via a counting
// sort over primary (n buckets). Order within a bucket follows input order.
func compressTriplets[V Value, I Index](primary []int, secondary []I, data []V, n int) (ia []int, ja []I, d []V) {
	w := scratch.Ints(n + 1)
	defer scratch.PutInts(w)
	for i := range w {
		w[i] = 0
	}
	ia = make([]int, n+1)
	ja = make([]I, len(secondary))
	d = make([]V, len(data))

	for _, p := range primary {
		w[p]++
	}
	cumsum(ia, w, n)

	for k, s := range secondary {
		p := w[primary[k]]
		ja[p] = s
		d[p] = data[k]
		w[primary[k]]++
	}
	return
}

// dedupeTriplets sums values sharing the same (primary, secondary)
// coordinate and sorts each primary element's indices, mirroring the
// teacher's dedupe in coordinate.go generalised to the generic index type.
func dedupeTriplets[V Value, I Index](ia []int, ja []I, d []V, m, n int) ([]I, []V) {
	w := scratch.Ints(n)
	defer scratch.PutInts(w)
	for i := range w {
		w[i] = -1
	}
	nz := 0

	for i := 0; i < m; i++ {
		start := ia[i]
		end := ia[i+1]
		q := nz
		for j := start; j < end; j++ {
			s := int(ja[j])
			if w[s] >= q {
				d[w[s]] += d[j]
			} else {
				w[s] = nz
				ja[nz] = ja[j]
				d[nz] = d[j]
				nz++
			}
		}
		ia[i] = q
		insertionSortBucket(ja[q:nz], d[q:nz])
	}
	ia[m] = nz

	return ja[:nz], d[:nz]
}

// insertionSortBucket sorts a single primary element's (index, value) pairs
// by index, keeping the parallel arrays in step. Buckets are small, so
// insertion sort avoids the allocation a sort.Interface shim would need.
func insertionSortBucket[V Value, I Index](idx []I, vals []V) {
	for i := 1; i < len(idx); i++ {
		ki, kv := idx[i], vals[i]
		j := i - 1
		for j >= 0 && idx[j] > ki {
			idx[j+1] = idx[j]
			vals[j+1] = vals[j]
			j--
		}
		idx[j+1] = ki
		vals[j+1] = kv
	}
}
