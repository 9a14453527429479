package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"wsp"}, &out, &errOut, nil)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "Usage")
}

func TestRun_HelpFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"wsp", "--help"}, &out, &errOut, nil)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Commands:")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"wsp", "bogus"}, &out, &errOut, nil)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown command")
}
