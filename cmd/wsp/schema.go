package main

import (
	"fmt"
	"strings"
)

// splitSchemaString splits a storage-schema-style spec string like
// "10s:6h,1m:7d" into its comma-separated tokens, tolerating
// surrounding whitespace around each token. The tokens themselves
// are parsed by whisper.ParseArchiveSpecs, which already accepts the
// PRECISION:RETENTION grammar (spec.md §4.2); this only adapts the
// single-string CLI convenience form into that grammar's token slice.
func splitSchemaString(s string) ([]string, error) {
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no archive specs parsed from %q", s)
	}
	return tokens, nil
}
