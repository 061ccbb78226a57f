package gravity

// Policy selects how outer loop indices are split across workers.
type Policy int

const (
	// PartitionBalanced splits so each worker evaluates roughly the same
	// number of pairs. Outer index i contributes n-1-i pairs, so equal-width
	// ranges are heavily front-loaded; this policy cuts on the pair-count
	// prefix sum instead.
	PartitionBalanced Policy = iota

	// PartitionBlock is the naive equal-width split [n/w*id, n/w*(id+1)).
	// The last range extends to n when w does not divide n, so no body is
	// dropped. Kept for benchmarking continuity; wall-clock load is uneven.
	PartitionBlock
)

func (p Policy) String() string {
	switch p {
	case PartitionBalanced:
		return "balanced"
	case PartitionBlock:
		return "block"
	}
	return "unknown"
}

// Range is a half-open interval of outer indices owned by one worker.
type Range struct {
	Start, End int
}

// Partition returns w ranges covering [0, n) exactly, no overlap and no gap.
// Workers beyond the available work get empty ranges.
func Partition(n, w int, policy Policy) []Range {
	if w < 1 {
		w = 1
	}
	if policy == PartitionBlock {
		return partitionBlock(n, w)
	}
	return partitionBalanced(n, w)
}

func partitionBlock(n, w int) []Range {
	ranges := make([]Range, w)
	width := n / w
	for id := 0; id < w; id++ {
		ranges[id] = Range{Start: width * id, End: width * (id + 1)}
	}
	ranges[w-1].End = n
	return ranges
}

func partitionBalanced(n, w int) []Range {
	ranges := make([]Range, w)
	total := n * (n - 1) / 2
	acc := 0
	start := 0
	for id := 0; id < w; id++ {
		// Cumulative pair-count target for this and all earlier workers.
		target := total * (id + 1) / w
		end := start
		for end < n && acc < target {
			acc += n - 1 - end
			end++
		}
		if id == w-1 {
			end = n
		}
		ranges[id] = Range{Start: start, End: end}
		start = end
	}
	return ranges
}
