package whisper

import "sort"

// ValidateArchiveSpecs sorts specs ascending by SecondsPerPoint and
// enforces V1-V4 (spec.md §3) on every adjacent pair. It returns the
// specs in canonical (finest-to-coarsest) order, or the first
// violation found.
func ValidateArchiveSpecs(specs []ArchiveSpec) ([]ArchiveSpec, error) {
	if len(specs) == 0 {
		return nil, ErrNoArchives
	}

	sorted := make([]ArchiveSpec, len(specs))
	copy(sorted, specs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SecondsPerPoint < sorted[j].SecondsPerPoint
	})

	for i := 0; i < len(sorted)-1; i++ {
		finer, coarser := sorted[i], sorted[i+1]

		// V1: strictly increasing precision (also catches duplicates).
		if !(finer.SecondsPerPoint < coarser.SecondsPerPoint) {
			return nil, ErrDuplicateArchive
		}

		// V2: coarser precision must be an exact multiple of finer.
		if coarser.SecondsPerPoint%finer.SecondsPerPoint != 0 {
			return nil, ErrPrecisionNotDivisible
		}

		// V3: coarser retention must be >= finer retention (equal
		// retentions are accepted).
		if coarser.Retention() < finer.Retention() {
			return nil, ErrRetentionNotIncreasing
		}

		// V4: finer archive must hold at least one full consolidation
		// window (the consolidation ratio k).
		k := coarser.SecondsPerPoint / finer.SecondsPerPoint
		if finer.Points < k {
			return nil, ErrInsufficientPoints
		}
	}

	return sorted, nil
}
