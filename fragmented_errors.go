package sparse

import "fmt"

func errFragLen(values, indices int) error {
	return fmt.Errorf("tatami: fragmented storage has %d value vectors but %d index vectors", values, indices)
}

func errFragPairLen(p int) error {
	return fmt.Errorf("tatami: fragmented primary element %d has mismatched value/index vector lengths", p)
}

func errFragRange(p, idx, secondary int) error {
	return fmt.Errorf("tatami: index %d in fragmented primary element %d out of range [0, %d)", idx, p, secondary)
}

func errFragIncreasing(p int) error {
	return fmt.Errorf("tatami: indices not strictly increasing within fragmented primary element %d", p)
}
