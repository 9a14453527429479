package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsrr/whisperdb/whisper"
)

func TestCmdDump_PrintsPoints(t *testing.T) {
	specs, err := whisper.ParseArchiveSpecs([]string{"10s:6"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "metric.wsp")
	require.NoError(t, whisper.Create(path, specs, whisper.CreateOptions{}))

	w, err := whisper.Open(path, whisper.WithClock(whisper.FixedClock(1000)))
	require.NoError(t, err)
	require.NoError(t, w.Set(1000, 42))
	require.NoError(t, w.Close())

	var out, errOut bytes.Buffer
	code := cmdDump([]string{path, "0"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "1000,42")
}

func TestCmdDump_RejectsBadArchiveIndex(t *testing.T) {
	path := createFixture(t, []string{"10s:6"})

	var out, errOut bytes.Buffer
	code := cmdDump([]string{path, "notanumber"}, &out, &errOut, nil)
	assert.NotEqual(t, 0, code)
}

func TestCmdDump_WholeFileLZ4RequiresLZ4Compress(t *testing.T) {
	path := createFixture(t, []string{"10s:6"})

	var out, errOut bytes.Buffer
	code := cmdDump([]string{"--whole-file", path, "0"}, &out, &errOut, nil)
	assert.NotEqual(t, 0, code)
}

func TestCmdDump_WholeFileLZ4ProducesDecodableBlock(t *testing.T) {
	specs, err := whisper.ParseArchiveSpecs([]string{"10s:6"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "metric.wsp")
	require.NoError(t, whisper.Create(path, specs, whisper.CreateOptions{}))

	w, err := whisper.Open(path, whisper.WithClock(whisper.FixedClock(1000)))
	require.NoError(t, err)
	require.NoError(t, w.Set(1000, 42))
	require.NoError(t, w.Close())

	var out, errOut bytes.Buffer
	code := cmdDump([]string{"--compress=lz4", "--whole-file", path, "0"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())
	assert.NotEmpty(t, out.Bytes())
}

func TestCmdDump_CompressGzipProducesNonTrivialOutput(t *testing.T) {
	specs, err := whisper.ParseArchiveSpecs([]string{"10s:6"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "metric.wsp")
	require.NoError(t, whisper.Create(path, specs, whisper.CreateOptions{}))

	w, err := whisper.Open(path, whisper.WithClock(whisper.FixedClock(1000)))
	require.NoError(t, err)
	require.NoError(t, w.Set(1000, 42))
	require.NoError(t, w.Close())

	var out, errOut bytes.Buffer
	code := cmdDump([]string{"--compress=gzip", path, "0"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())
	assert.NotEmpty(t, out.Bytes())
	assert.NotContains(t, out.String(), "1000,42") // compressed, not plaintext
}
