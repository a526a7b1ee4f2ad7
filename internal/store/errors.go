package store

import "fmt"

func errLen(name string, want, got int) error {
	return fmt.Errorf("tatami: %s has length %d, want %d", name, got, want)
}

func errStart() error {
	return fmt.Errorf("tatami: pointers[0] must be 0")
}

func errEnd(got, nnz int) error {
	return fmt.Errorf("tatami: pointers[primary] (%d) must equal len(values) (%d)", got, nnz)
}

func errNonDecreasing(p int) error {
	return fmt.Errorf("tatami: pointers is not non-decreasing at primary element %d", p)
}

func errOutOfRange(p, idx, secondary int) error {
	return fmt.Errorf("tatami: index %d in primary element %d out of range [0, %d)", idx, p, secondary)
}

func errNotIncreasing(p int) error {
	return fmt.Errorf("tatami: indices not strictly increasing within primary element %d", p)
}
