package whisper

import "fmt"

// aggregate folds a raw run of k consecutive points (as read from
// disk, including empty slots) into a single value per the file's
// aggregation method (C7). All methods operate over every slot in the
// window, empty or not — an empty slot contributes Interval=0,
// Value=0 to the computation, matching the documented T1 behavior
// (a single written point averaged over an otherwise-empty window).
//
// last is computed as the value of the slot with the greatest decoded
// Interval, ties going to the earliest index. This is a deliberate fix
// of the teacher's "last" bug (design notes §9: the reference source
// compares the loop index instead of the slot's interval).
func aggregate(method AggregationMethod, points []Point) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("whisper: cannot aggregate an empty point run")
	}

	switch method {
	case AggregationAverage:
		var sum float64
		for _, p := range points {
			sum += p.Value
		}
		return sum / float64(len(points)), nil

	case AggregationSum:
		var sum float64
		for _, p := range points {
			sum += p.Value
		}
		return sum, nil

	case AggregationLast:
		best := points[0]
		for _, p := range points[1:] {
			if p.Interval > best.Interval {
				best = p
			}
		}
		return best.Value, nil

	case AggregationMax:
		best := points[0].Value
		for _, p := range points[1:] {
			if p.Value > best {
				best = p.Value
			}
		}
		return best, nil

	case AggregationMin:
		best := points[0].Value
		for _, p := range points[1:] {
			if p.Value < best {
				best = p.Value
			}
		}
		return best, nil

	default:
		return 0, ErrUnknownAggregation
	}
}

// nonEmptyCount reports how many of the given points have a non-zero
// decoded Interval, used for x-files-factor enforcement (spec.md §4.8).
func nonEmptyCount(points []Point) int {
	n := 0
	for _, p := range points {
		if !p.empty() {
			n++
		}
	}
	return n
}

// xFilesThreshold is the minimum number of non-empty slots required
// in a k-slot propagation window, per the redesign-flag resolution in
// SPEC_FULL.md §0: ceil(k * xff / 100).
func xFilesThreshold(k int, xff uint8) int {
	return (k*int(xff) + 99) / 100
}
