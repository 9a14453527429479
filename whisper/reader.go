package whisper

import (
	"fmt"
	"sort"
)

// Get performs a point-in-time query (C9): it selects the same primary
// archive Set would have chosen for timestamp, locates the slot, and
// returns its decoded value. The slot's Interval is not checked
// against timestamp: a stale slot from a previous ring cycle is
// returned as-is (spec.md §4.9). Callers needing staleness detection
// should use GetPoint instead.
func (w *Whisper) Get(timestamp uint64) (float64, error) {
	p, err := w.GetPoint(timestamp)
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// GetPoint is like Get but also returns the slot's decoded Interval,
// letting the caller detect staleness itself.
func (w *Whisper) GetPoint(timestamp uint64) (Point, error) {
	now := w.clock.Now()
	diff := int64(now) - int64(timestamp)
	if diff < 0 {
		return Point{}, fmt.Errorf("%w: timestamp %d is in the future (now=%d)", ErrOutOfRange, timestamp, now)
	}
	if uint64(diff) > w.Header.Metadata.MaxRetention {
		return Point{}, fmt.Errorf("%w: timestamp %d is older than max retention %d", ErrOutOfRange, timestamp, w.Header.Metadata.MaxRetention)
	}

	primary, _, ok := selectPrimary(w.Header.Archives, uint64(diff))
	if !ok {
		return Point{}, fmt.Errorf("%w: no archive covers age %d", ErrOutOfRange, diff)
	}

	_, offset := locate(primary, timestamp)
	return w.readOnePoint(offset)
}

// GetArchivePoint reads the slot that holds timestamp in a specific
// archive, bypassing primary-archive selection. This is what lets
// callers (such as the T1/T2 tests) inspect a coarser archive's
// consolidated value directly instead of only ever seeing whichever
// archive Get would pick for "now".
func (w *Whisper) GetArchivePoint(archiveIndex int, timestamp uint64) (Point, error) {
	if archiveIndex < 0 || archiveIndex >= len(w.Header.Archives) {
		return Point{}, fmt.Errorf("whisper: archive index %d out of range", archiveIndex)
	}
	_, offset := locate(w.Header.Archives[archiveIndex], timestamp)
	return w.readOnePoint(offset)
}

func (w *Whisper) readOnePoint(offset uint32) (Point, error) {
	buf := make([]byte, pointSize)
	if _, err := w.file.ReadAt(buf, int64(offset)); err != nil {
		return Point{}, fmt.Errorf("whisper: read point: %w", err)
	}
	return decodePoint(buf), nil
}

// FetchRange reads every occupied slot of archives[archiveIndex] whose
// decoded Interval falls in [from, until), in ascending time order.
// This completes the teacher's stubbed Fetch/FetchUntil (SPEC_FULL.md
// §3) by reusing the point locator's ring layout rather than adding
// any new on-disk behavior.
func (w *Whisper) FetchRange(archiveIndex int, from, until uint64) ([]Point, error) {
	if archiveIndex < 0 || archiveIndex >= len(w.Header.Archives) {
		return nil, fmt.Errorf("whisper: archive index %d out of range", archiveIndex)
	}
	a := w.Header.Archives[archiveIndex]

	buf := make([]byte, a.size)
	if _, err := w.file.ReadAt(buf, int64(a.Offset)); err != nil {
		return nil, fmt.Errorf("whisper: fetch range: %w", err)
	}
	points, err := decodePoints(buf)
	if err != nil {
		return nil, err
	}

	out := points[:0]
	for _, p := range points {
		if p.empty() {
			continue
		}
		if p.Interval >= from && p.Interval < until {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Interval < out[j].Interval })
	return out, nil
}

// Fetch reads every occupied slot from the archive that would have
// been the primary write target for from, up to now.
func (w *Whisper) Fetch(from uint64) ([]Point, error) {
	return w.FetchUntil(from, w.clock.Now())
}

// FetchUntil is like Fetch but with an explicit upper bound.
func (w *Whisper) FetchUntil(from, until uint64) ([]Point, error) {
	now := w.clock.Now()
	var age uint64
	if int64(now) > int64(from) {
		age = uint64(int64(now) - int64(from))
	}

	_, idx, ok := selectPrimary(w.Header.Archives, age)
	if !ok {
		idx = len(w.Header.Archives) - 1 // older than every archive: best effort from the coarsest
	}
	return w.FetchRange(idx, from, until)
}
