package whisper

import "errors"

// UpdateMany writes a batch of points, in the order given. Points
// outside the file's time horizon are silently dropped, matching the
// teacher's "drop remaining points that don't fit in the db" behavior
// for its own UpdateMany; any other error (I/O, propagation) stops the
// batch and is returned immediately.
//
// Unlike the teacher's UpdateMany/archiveUpdateMany (which re-derives
// its own quantize-and-propagate loop over a second bespoke code path),
// this routes every point through the ordinary Set call, so bulk and
// single-point writes share one write/propagate implementation
// (SPEC_FULL.md §3).
func (w *Whisper) UpdateMany(points []Point) error {
	for _, p := range points {
		if err := w.Set(p.Interval, p.Value); err != nil {
			if errors.Is(err, ErrOutOfRange) {
				continue
			}
			return err
		}
	}
	return nil
}
