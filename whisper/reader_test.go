package whisper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRange_FiltersAndSorts(t *testing.T) {
	w := createOpen(t, []string{"10s:1m", "1m:5m"}, CreateOptions{}, FixedClock(1000))

	for _, ts := range []uint64{1000, 990, 980, 970, 960, 950} {
		require.NoError(t, w.Set(ts, float64(ts)))
	}

	points, err := w.FetchRange(0, 950, 1001)
	require.NoError(t, err)
	require.Len(t, points, 6)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Interval, points[i].Interval)
	}
	assert.Equal(t, uint64(950), points[0].Interval)
	assert.Equal(t, uint64(1000), points[len(points)-1].Interval)
}

func TestFetchRange_ExcludesOutOfBoundSlots(t *testing.T) {
	w := createOpen(t, []string{"10s:1m"}, CreateOptions{}, FixedClock(1000))
	require.NoError(t, w.Set(1000, 1))
	require.NoError(t, w.Set(990, 2))

	points, err := w.FetchRange(0, 995, 1001)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, uint64(1000), points[0].Interval)
}

func TestFetchRange_InvalidArchiveIndex(t *testing.T) {
	w := createOpen(t, []string{"10s:6"}, CreateOptions{}, FixedClock(1000))
	_, err := w.FetchRange(5, 0, 1000)
	require.Error(t, err)
}

func TestFetch_SelectsArchiveByAge(t *testing.T) {
	w := createOpen(t, []string{"10s:1m", "1m:5m"}, CreateOptions{}, FixedClock(1000))
	require.NoError(t, w.Set(750, 7)) // diff=250 > archive0's 60s retention, lands in archive 1

	points, err := w.Fetch(600)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 7.0, points[0].Value)
}

func TestGetPoint_ReturnsStaleSlotAsIs(t *testing.T) {
	specs, err := ParseArchiveSpecs([]string{"10s:6"}) // 60s retention, 6 slots
	require.NoError(t, err)
	path := t.TempDir() + "/metric.wsp"
	require.NoError(t, Create(path, specs, CreateOptions{}))

	w, err := Open(path, WithClock(FixedClock(1000)))
	require.NoError(t, err)
	require.NoError(t, w.Set(1000, 5))
	require.NoError(t, w.Close())

	// One full retention (60s) later the same ring slot is addressed
	// again; GetPoint must return the stale stored interval/value
	// as-is rather than checking it against the new timestamp.
	reopened, err := Open(path, WithClock(FixedClock(1060)))
	require.NoError(t, err)
	defer reopened.Close()

	stale, err := reopened.GetPoint(1060)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), stale.Interval)
	assert.Equal(t, 5.0, stale.Value)
}
