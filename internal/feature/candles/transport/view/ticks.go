package view

// MaxXTicks bounds the number of time labels drawn on the X axis.
const MaxXTicks = 15

// TickIndices picks at most limit indices out of n points, evenly spread,
// always including the first and the last point.
func TickIndices(n, limit int) []int {
	if n <= 0 || limit <= 0 {
		return nil
	}
	if n <= limit {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if limit == 1 {
		return []int{0}
	}

	out := make([]int, 0, limit)
	step := float64(n-1) / float64(limit-1)
	last := -1
	for i := 0; i < limit; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx >= n {
			idx = n - 1
		}
		if idx != last {
			out = append(out, idx)
			last = idx
		}
	}
	return out
}
