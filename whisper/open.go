package whisper

import (
	"fmt"
	"io"
	"os"
)

// Whisper is an open handle: one file descriptor plus the in-memory
// archive chain reconstructed from it (C5). The chain owns every
// Archive contiguously; lowerIdx links each archive to the next
// coarser one (or -1 for the coarsest), per spec.md §9 "Ownership".
type Whisper struct {
	Header Header
	clock  Clock
	file   *os.File
}

// OpenOption configures Open.
type OpenOption func(*Whisper)

// WithClock overrides the Clock used to resolve "now" for Set (and for
// the implicit max-retention bound on Get). Defaults to SystemClock.
func WithClock(c Clock) OpenOption {
	return func(w *Whisper) { w.clock = c }
}

// Open opens an existing whisper file and reconstructs its archive
// chain in memory (C5). On any short read or structural inconsistency
// it returns ErrCorrupt and releases the file descriptor.
func Open(path string, opts ...OpenOption) (_ *Whisper, err error) {
	file, err := os.OpenFile(path, os.O_RDWR, filePerm)
	if err != nil {
		return nil, fmt.Errorf("whisper: open %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = file.Close()
		}
	}()

	header, err := readHeader(file)
	if err != nil {
		return nil, err
	}

	w := &Whisper{Header: header, clock: SystemClock(), file: file}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Close releases the file descriptor. It is safe to call once; the
// handle must not be used afterwards.
func (w *Whisper) Close() error {
	return w.file.Close()
}

// Retentions exposes the opened archive chain for read-only
// inspection (grounded on ljurk-go-whisper-tools' info/--short
// commands, which need exactly this to render a retention table).
func (w *Whisper) Retentions() []Archive {
	out := make([]Archive, len(w.Header.Archives))
	copy(out, w.Header.Archives)
	return out
}

// AggregationMethod reports the file's aggregation method.
func (w *Whisper) AggregationMethod() AggregationMethod { return w.Header.Metadata.Aggregation }

// XFilesFactor reports the file's propagation density threshold (0-100).
func (w *Whisper) XFilesFactor() uint8 { return w.Header.Metadata.XFilesFactor }

// MaxRetention reports the file's overall retention horizon in seconds.
func (w *Whisper) MaxRetention() uint64 { return w.Header.Metadata.MaxRetention }

func readHeader(r io.ReadSeeker) (Header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Header{}, fmt.Errorf("whisper: seek header: %w", err)
	}

	metaBuf := make([]byte, metadataSize)
	if _, err := io.ReadFull(r, metaBuf); err != nil {
		return Header{}, fmt.Errorf("%w: short header read: %v", ErrCorrupt, err)
	}
	metadata := decodeMetadata(metaBuf)

	if metadata.ArchiveCount == 0 {
		return Header{}, fmt.Errorf("%w: archive_count is 0", ErrCorrupt)
	}

	descBuf := make([]byte, archiveDescriptorSize)
	descriptors := make([]ArchiveDescriptor, metadata.ArchiveCount)
	for i := range descriptors {
		if _, err := io.ReadFull(r, descBuf); err != nil {
			return Header{}, fmt.Errorf("%w: short archive directory read at index %d: %v", ErrCorrupt, i, err)
		}
		descriptors[i] = decodeArchiveDescriptor(descBuf)
	}

	archives := make([]Archive, len(descriptors))
	for i, d := range descriptors {
		if d.SecondsPerPoint == 0 || d.Points == 0 {
			return Header{}, fmt.Errorf("%w: archive %d has zero seconds_per_point or points", ErrCorrupt, i)
		}
		lowerIdx := i + 1
		if lowerIdx >= len(descriptors) {
			lowerIdx = -1
		}
		archives[i] = Archive{
			ArchiveDescriptor: d,
			retention:         uint64(d.SecondsPerPoint) * uint64(d.Points),
			size:              d.Points * pointSize,
			lowerIdx:          lowerIdx,
		}
	}

	return Header{Metadata: metadata, Archives: archives}, nil
}

// lower returns the next coarser archive in the chain, or false if a
// is already the coarsest.
func (h Header) lower(a Archive) (Archive, bool) {
	if a.lowerIdx < 0 {
		return Archive{}, false
	}
	return h.Archives[a.lowerIdx], true
}
