package whisper

import "errors"

// Sentinel errors for the taxonomy in the design notes: configuration,
// corruption, and domain errors are distinguishable with errors.Is;
// I/O errors are passed through from the os package with added context.
var (
	// ErrNoArchives is returned by Create when the archive list is empty.
	ErrNoArchives = errors.New("whisper: archive list cannot have 0 length")

	// ErrDuplicateArchive means two archives have the same precision.
	ErrDuplicateArchive = errors.New("whisper: no archive may be a duplicate of another")

	// ErrPrecisionNotDivisible means a coarser archive's precision isn't
	// a multiple of the next finer archive's precision.
	ErrPrecisionNotDivisible = errors.New("whisper: higher precision archives must evenly divide lower precision")

	// ErrRetentionNotIncreasing means a coarser archive covers a shorter
	// time span than the next finer archive.
	ErrRetentionNotIncreasing = errors.New("whisper: lower precision archives must not cover a shorter time interval")

	// ErrInsufficientPoints means an archive doesn't hold enough points
	// to consolidate into the next coarser archive.
	ErrInsufficientPoints = errors.New("whisper: each archive must be able to consolidate the next")

	// ErrInvalidSpec is returned by the archive spec parser on any
	// malformed PRECISION:RETENTION token.
	ErrInvalidSpec = errors.New("whisper: invalid archive spec")

	// ErrCorrupt is returned by Open when the header or archive
	// directory is short or structurally inconsistent.
	ErrCorrupt = errors.New("whisper: file is corrupted")

	// ErrOutOfRange is returned by Set/Get when the timestamp is in the
	// future or older than the file's max retention.
	ErrOutOfRange = errors.New("whisper: no suitable archive for timestamp")

	// ErrUnknownAggregation is returned when an aggregation method byte
	// doesn't match one of the AggregationAverage..AggregationMin
	// constants.
	ErrUnknownAggregation = errors.New("whisper: unknown aggregation method")
)
