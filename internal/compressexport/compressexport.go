// Package compressexport compresses wsp's human-readable dump output.
// It has nothing to do with the on-disk whisper file format, which is
// never compressed (spec.md's "No compression" non-goal binds storage,
// not ancillary CLI export streams).
package compressexport

import (
	"fmt"
	"io"
	"sync"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Codec names accepted by wsp dump --compress.
const (
	None = "none"
	Gzip = "gzip"
	LZ4  = "lz4"
)

// NewWriter wraps w so that everything written to the returned writer
// is compressed with the named codec before reaching w. The caller
// must Close the returned writer to flush trailing codec state.
func NewWriter(w io.Writer, codec string) (io.WriteCloser, error) {
	switch codec {
	case "", None:
		return nopCloser{w}, nil
	case Gzip:
		return kgzip.NewWriter(w), nil
	case LZ4:
		lw := lz4.NewWriter(w)
		return lw, nil
	default:
		return nil, fmt.Errorf("compressexport: unknown codec %q", codec)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// lz4CompressorPool mirrors the pooled-compressor pattern used for
// one-shot block (not streaming) compression, for callers that hold a
// whole dump in memory (CompressBlockLZ4) instead of streaming it.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// CompressBlockLZ4 compresses a single in-memory buffer, used by
// wsp dump --compress=lz4 --whole-file.
func CompressBlockLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("compressexport: lz4 compress: %w", err)
	}
	return dst[:n], nil
}
