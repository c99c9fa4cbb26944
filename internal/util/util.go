package util

// Map applies a function to each element of a slice and returns a new slice.
func Map[T1 any, T2 any](a []T1, f func(T1) T2) []T2 {
	if a == nil {
		return nil
	}
	b := make([]T2, len(a))
	for i, x := range a {
		b[i] = f(x)
	}
	return b
}

// Filter filters a slice in-place based on a predicate function.
func Filter[T any](list []T, f func(T) bool) []T {
	pos := 0
	for _, x := range list {
		if f(x) {
			list[pos] = x
			pos++
		}
	}
	return list[:pos]
}
