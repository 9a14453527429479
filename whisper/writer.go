package whisper

import "fmt"

// Set writes one (timestamp, value) point (C8 step 1-2) and then
// recursively propagates the change into every coarser archive (C8
// step 3). The primary write always succeeds or fails atomically with
// the call; a propagation failure is returned to the caller but does
// not undo the primary write (spec.md §7 class 5).
func (w *Whisper) Set(timestamp uint64, value float64) error {
	now := w.clock.Now()
	diff := int64(now) - int64(timestamp)
	if diff < 0 {
		return fmt.Errorf("%w: timestamp %d is in the future (now=%d)", ErrOutOfRange, timestamp, now)
	}
	if uint64(diff) > w.Header.Metadata.MaxRetention {
		return fmt.Errorf("%w: timestamp %d is older than max retention %d", ErrOutOfRange, timestamp, w.Header.Metadata.MaxRetention)
	}

	primary, _, ok := selectPrimary(w.Header.Archives, uint64(diff))
	if !ok {
		return fmt.Errorf("%w: no archive covers age %d", ErrOutOfRange, diff)
	}

	interval, offset := locate(primary, timestamp)
	if err := w.writeOnePoint(offset, Point{Interval: interval, Value: value}); err != nil {
		return fmt.Errorf("whisper: primary write: %w", err)
	}

	finer := primary
	for {
		coarser, hasLower := w.Header.lower(finer)
		if !hasLower {
			break
		}
		changed, err := w.propagate(timestamp, finer, coarser)
		if err != nil {
			return fmt.Errorf("whisper: archive will probably be inconsistent: %w", err)
		}
		if !changed {
			break
		}
		finer = coarser
	}

	return nil
}

// selectPrimary walks the chain finest-to-coarsest and returns the
// first archive whose retention strictly exceeds diff (spec.md §4.8.1),
// along with its index in the chain.
func selectPrimary(archives []Archive, diff uint64) (Archive, int, bool) {
	for i, a := range archives {
		if a.retention > diff {
			return a, i, true
		}
	}
	return Archive{}, -1, false
}

// propagate folds finer's k-slot window covering t into coarser's
// corresponding bucket (C8 step 3), enforcing the file's
// x-files-factor: if fewer than ceil(k*xff/100) slots in the window
// are non-empty, the coarser bucket is left unchanged and propagation
// stops (the redesign-flag resolution recorded in SPEC_FULL.md §0).
func (w *Whisper) propagate(t uint64, finer, coarser Archive) (changed bool, err error) {
	coarserInterval, coarserOffset := locate(coarser, t)

	k := int(coarser.SecondsPerPoint / finer.SecondsPerPoint)
	_, firstOffset := locate(finer, coarserInterval)

	points, err := w.readWindow(finer, firstOffset, k)
	if err != nil {
		return false, err
	}

	threshold := xFilesThreshold(k, w.Header.Metadata.XFilesFactor)
	if nonEmptyCount(points) < threshold {
		return false, nil
	}

	value, err := aggregate(w.Header.Metadata.Aggregation, points)
	if err != nil {
		return false, err
	}

	if err := w.writeOnePoint(coarserOffset, Point{Interval: coarserInterval, Value: value}); err != nil {
		return false, err
	}
	return true, nil
}

// readWindow reads k consecutive slots starting at firstOffset within
// archive a, splitting the read at the ring boundary if the window
// wraps (spec.md §4.8.3b / P7). The two segments are concatenated in
// correct temporal order.
func (w *Whisper) readWindow(a Archive, firstOffset uint32, k int) ([]Point, error) {
	span := uint32(k) * pointSize
	relativeFirst := firstOffset - a.Offset

	if relativeFirst+span <= a.size {
		buf := make([]byte, span)
		if _, err := w.file.ReadAt(buf, int64(firstOffset)); err != nil {
			return nil, fmt.Errorf("whisper: read window: %w", err)
		}
		return decodePoints(buf)
	}

	tailBytes := a.size - relativeFirst
	headBytes := span - tailBytes

	buf := make([]byte, span)
	if _, err := w.file.ReadAt(buf[:tailBytes], int64(firstOffset)); err != nil {
		return nil, fmt.Errorf("whisper: read window tail: %w", err)
	}
	if _, err := w.file.ReadAt(buf[tailBytes:tailBytes+headBytes], int64(a.Offset)); err != nil {
		return nil, fmt.Errorf("whisper: read window head: %w", err)
	}
	return decodePoints(buf)
}

// writeOnePoint writes a single point at offset. A single slot never
// spans the ring boundary, so no wrap handling is needed here.
func (w *Whisper) writeOnePoint(offset uint32, p Point) error {
	buf := make([]byte, pointSize)
	encodePoint(buf, p)
	_, err := w.file.WriteAt(buf, int64(offset))
	return err
}
