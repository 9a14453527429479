package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireLock_ReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metric.wsp")

	l1, err := acquireLock(path)
	require.NoError(t, err)
	l1.release()

	l2, err := acquireLock(path)
	require.NoError(t, err)
	l2.release()
}
