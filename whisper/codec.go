package whisper

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Fixed, tightly-packed on-disk sizes (spec.md §3/§4.1). A reimplementer
// must verify these; we do it at package init time rather than trusting
// binary.Size on a struct whose layout could silently grow a padding
// byte in the future.
const (
	metadataSize          = 14
	archiveDescriptorSize = 12
	pointSize             = 16
)

func init() {
	// Defensive startup check per spec.md §4.1: the wire sizes below
	// are hand-computed from the field list in §3, not derived from
	// binary.Size, so this just guards against a future edit drifting
	// the two apart.
	const (
		wantMetadata = 1 + 8 + 1 + 4 // aggregation + max_retention + x_files_factor + archive_count
		wantArchive  = 4 + 4 + 4     // offset + seconds_per_point + points
		wantPoint    = 8 + 8         // interval + value
	)
	if metadataSize != wantMetadata || archiveDescriptorSize != wantArchive || pointSize != wantPoint {
		panic("whisper: on-disk record size constants do not match the documented layout")
	}
}

func encodeMetadata(buf []byte, m Metadata) {
	_ = buf[metadataSize-1]
	buf[0] = byte(m.Aggregation)
	binary.BigEndian.PutUint64(buf[1:9], m.MaxRetention)
	buf[9] = m.XFilesFactor
	binary.BigEndian.PutUint32(buf[10:14], m.ArchiveCount)
}

func decodeMetadata(buf []byte) Metadata {
	_ = buf[metadataSize-1]
	return Metadata{
		Aggregation:  AggregationMethod(buf[0]),
		MaxRetention: binary.BigEndian.Uint64(buf[1:9]),
		XFilesFactor: buf[9],
		ArchiveCount: binary.BigEndian.Uint32(buf[10:14]),
	}
}

func encodeArchiveDescriptor(buf []byte, a ArchiveDescriptor) {
	_ = buf[archiveDescriptorSize-1]
	binary.BigEndian.PutUint32(buf[0:4], a.Offset)
	binary.BigEndian.PutUint32(buf[4:8], a.SecondsPerPoint)
	binary.BigEndian.PutUint32(buf[8:12], a.Points)
}

func decodeArchiveDescriptor(buf []byte) ArchiveDescriptor {
	_ = buf[archiveDescriptorSize-1]
	return ArchiveDescriptor{
		Offset:          binary.BigEndian.Uint32(buf[0:4]),
		SecondsPerPoint: binary.BigEndian.Uint32(buf[4:8]),
		Points:          binary.BigEndian.Uint32(buf[8:12]),
	}
}

// encodePoint writes interval as a raw u64 and value as the raw bits
// of its float64 encoding (the value-representation decision recorded
// in SPEC_FULL.md §0): round-tripping through write/read preserves the
// exact bit pattern, satisfying V6/T3.
func encodePoint(buf []byte, p Point) {
	_ = buf[pointSize-1]
	binary.BigEndian.PutUint64(buf[0:8], p.Interval)
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(p.Value))
}

func decodePoint(buf []byte) Point {
	_ = buf[pointSize-1]
	return Point{
		Interval: binary.BigEndian.Uint64(buf[0:8]),
		Value:    math.Float64frombits(binary.BigEndian.Uint64(buf[8:16])),
	}
}

func encodePoints(points []Point) []byte {
	buf := make([]byte, len(points)*pointSize)
	for i, p := range points {
		encodePoint(buf[i*pointSize:(i+1)*pointSize], p)
	}
	return buf
}

func decodePoints(buf []byte) ([]Point, error) {
	if len(buf)%pointSize != 0 {
		return nil, fmt.Errorf("whisper: point buffer length %d not a multiple of %d: %w", len(buf), pointSize, ErrCorrupt)
	}
	n := len(buf) / pointSize
	points := make([]Point, n)
	for i := range points {
		points[i] = decodePoint(buf[i*pointSize : (i+1)*pointSize])
	}
	return points, nil
}
