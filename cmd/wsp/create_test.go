package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsrr/whisperdb/whisper"
)

func TestCmdCreate_BuildsValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metric.wsp")

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path, "10s:6h,1m:7d"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, path+"\n", out.String())

	w, err := whisper.Open(path)
	require.NoError(t, err)
	defer w.Close()
	assert.Len(t, w.Retentions(), 2)
}

func TestCmdCreate_RefusesExistingWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metric.wsp")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o640))

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path, "10s:6h"}, &out, &errOut, nil)
	assert.NotEqual(t, 0, code)
	assert.True(t, strings.Contains(errOut.String(), "already exists"))
}

func TestCmdCreate_ForceOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metric.wsp")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o640))

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{"--force", path, "10s:6h"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())

	w, err := whisper.Open(path)
	require.NoError(t, err)
	defer w.Close()
}

func TestCmdCreate_RejectsBadSchemaString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metric.wsp")

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path, "garbage"}, &out, &errOut, nil)
	assert.NotEqual(t, 0, code)
}

func TestCmdCreate_FallsBackToConfigArchivesWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wsp.jsonc"), []byte(`{"archives": "10s:6h,1m:7d"}`), 0o640))
	path := filepath.Join(dir, "metric.wsp")

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())

	w, err := whisper.Open(path)
	require.NoError(t, err)
	defer w.Close()
	assert.Len(t, w.Retentions(), 2)
}

func TestCmdCreate_MissingArchivesAndNoConfigFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metric.wsp")

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path}, &out, &errOut, nil)
	assert.NotEqual(t, 0, code)
}

func TestCmdCreate_UsesConfigDefaultAggregation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wsp.jsonc"), []byte(`{"aggregation": "max"}`), 0o640))
	path := filepath.Join(dir, "metric.wsp")

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	var out, errOut bytes.Buffer
	code := cmdCreate([]string{path, "10s:6h"}, &out, &errOut, nil)
	require.Equal(t, 0, code, errOut.String())

	w, err := whisper.Open(path)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, whisper.AggregationMax, w.AggregationMethod())
}
