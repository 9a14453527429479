package whisper

import (
	"fmt"
	"os"
)

// filePerm is "mode rw-owner / r-group" from spec.md §4.4.
const filePerm = 0o640

// CreateOptions configures Create.
type CreateOptions struct {
	Aggregation  AggregationMethod // 0 defaults to AggregationAverage
	XFilesFactor uint8             // 0..100
}

// Create lays out a new whisper file at path (C4): parses nothing
// itself (the caller supplies already-assembled ArchiveSpecs, typically
// via ParseArchiveSpecs), validates them (C3), computes offsets, writes
// the header and archive directory, and preallocates the point rings
// to all-zero bytes.
//
// Unlike the teacher's Create (which opens O_CREAT|O_WRONLY without
// O_TRUNC, per design notes §9), this truncates an existing file at
// path explicitly rather than leaving stale trailing bytes — one of
// the two reimplementation choices the design notes call out. Whether
// to refuse instead is left to the caller (the CLI's create command
// pre-checks existence per spec.md §4.4 step 4).
func Create(path string, specs []ArchiveSpec, opts CreateOptions) (err error) {
	canonical, err := ValidateArchiveSpecs(specs)
	if err != nil {
		return err
	}

	aggregation := opts.Aggregation
	if aggregation == 0 {
		aggregation = AggregationAverage
	}
	if !aggregation.valid() {
		return ErrUnknownAggregation
	}
	if opts.XFilesFactor > 100 {
		return fmt.Errorf("whisper: x_files_factor %d out of range 0..100", opts.XFilesFactor)
	}

	var maxRetention uint64
	for _, s := range canonical {
		if r := s.Retention(); r > maxRetention {
			maxRetention = r
		}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("whisper: create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	headerSize := uint32(metadataSize) + archiveDescriptorSize*uint32(len(canonical))

	metadata := Metadata{
		Aggregation:  aggregation,
		MaxRetention: maxRetention,
		XFilesFactor: opts.XFilesFactor,
		ArchiveCount: uint32(len(canonical)),
	}
	metaBuf := make([]byte, metadataSize)
	encodeMetadata(metaBuf, metadata)
	if _, err = file.Write(metaBuf); err != nil {
		return fmt.Errorf("whisper: write header: %w", err)
	}

	descriptors := make([]ArchiveDescriptor, len(canonical))
	offset := headerSize
	for i, s := range canonical {
		descriptors[i] = ArchiveDescriptor{
			Offset:          offset,
			SecondsPerPoint: s.SecondsPerPoint,
			Points:          s.Points,
		}
		offset += s.Points * pointSize
	}

	descBuf := make([]byte, archiveDescriptorSize)
	for _, d := range descriptors {
		encodeArchiveDescriptor(descBuf, d)
		if _, err = file.Write(descBuf); err != nil {
			return fmt.Errorf("whisper: write archive directory: %w", err)
		}
	}

	// Preallocate all point rings out to the final file size. Truncate
	// grows the file with zero bytes on every platform Go supports
	// (sparse where the filesystem allows it), satisfying "all point
	// slots must read back as all-zero bytes" without requiring a
	// platform-specific fallocate call.
	if err = file.Truncate(int64(offset)); err != nil {
		return fmt.Errorf("whisper: preallocate: %w", err)
	}

	return nil
}
