package whisper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_RoundTrip(t *testing.T) {
	cases := []Metadata{
		{Aggregation: AggregationAverage, MaxRetention: 0, XFilesFactor: 0, ArchiveCount: 0},
		{Aggregation: AggregationMax, MaxRetention: math.MaxUint64, XFilesFactor: 100, ArchiveCount: math.MaxUint32},
	}
	for _, m := range cases {
		buf := make([]byte, metadataSize)
		encodeMetadata(buf, m)
		require.Len(t, buf, metadataSize)
		got := decodeMetadata(buf)
		assert.Equal(t, m, got)
	}
}

func TestArchiveDescriptor_RoundTrip(t *testing.T) {
	d := ArchiveDescriptor{Offset: 14, SecondsPerPoint: 10, Points: 6}
	buf := make([]byte, archiveDescriptorSize)
	encodeArchiveDescriptor(buf, d)
	require.Len(t, buf, archiveDescriptorSize)
	assert.Equal(t, d, decodeArchiveDescriptor(buf))
}

// TestPoint_RoundTripBits is the codec half of T3: for finite
// non-negative float64 values, encodePoint/decodePoint round-trip
// bit-for-bit.
func TestPoint_RoundTripBits(t *testing.T) {
	values := []float64{0, 1, 100, 16.666666666666668, 350, math.MaxFloat64, 1e-300, 0.1}
	for _, v := range values {
		p := Point{Interval: 12345, Value: v}
		buf := make([]byte, pointSize)
		encodePoint(buf, p)
		require.Len(t, buf, pointSize)
		got := decodePoint(buf)
		assert.Equal(t, p.Interval, got.Interval)
		assert.Equal(t, math.Float64bits(v), math.Float64bits(got.Value), "bits must round-trip exactly")
	}
}

func TestDecodePoints_RejectsMisalignedBuffer(t *testing.T) {
	_, err := decodePoints(make([]byte, pointSize+1))
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestEncodeDecodePoints_Multiple(t *testing.T) {
	points := []Point{
		{Interval: 10, Value: 1},
		{Interval: 20, Value: 2},
		{Interval: 0, Value: 0},
	}
	buf := encodePoints(points)
	got, err := decodePoints(buf)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}
