package interpret

import "fmt"

// MultisetEqual reports whether a and b contain the same elements with
// the same multiplicities, ignoring order - the comparison a rewrite's
// semantic-preservation property test needs, since neither Flatten's
// input order nor a GroupByKey's shuffle makes any ordering guarantee.
func MultisetEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[fmt.Sprintf("%#v", v)]++
	}
	for _, v := range b {
		key := fmt.Sprintf("%#v", v)
		counts[key]--
		if counts[key] < 0 {
			return false
		}
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}
