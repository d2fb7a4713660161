package globe

// rowBand is an inclusive range of row offsets from the disc center.
type rowBand struct {
	lo, hi int
}

func (b rowBand) rows() int {
	return b.hi - b.lo + 1
}

// partitionRows splits [lo, hi] into at most n contiguous, ordered, non-empty
// bands that cover every row exactly once. Earlier bands take the remainder
// rows, so band sizes differ by at most one.
func partitionRows(lo, hi, n int) []rowBand {
	total := hi - lo + 1
	if total <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}

	size, rem := total/n, total%n
	bands := make([]rowBand, 0, n)
	start := lo
	for i := 0; i < n; i++ {
		rows := size
		if i < rem {
			rows++
		}
		bands = append(bands, rowBand{lo: start, hi: start + rows - 1})
		start += rows
	}
	return bands
}
