// Package digest computes a non-normative content digest over an
// opened whisper file's point rings, for operators comparing two
// files out of band (wsp info --digest, wsp dump --digest). It is
// never stored on disk and has no bearing on the file format itself.
package digest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tsrr/whisperdb/whisper"
)

// Archives returns the xxHash64 digest of every archive's occupied
// slots (empty slots are skipped; the rest are hashed in ascending
// Interval order), in archive order, plus a combined digest over all
// of them.
func Archives(w *whisper.Whisper) (per []uint64, combined uint64, err error) {
	retentions := w.Retentions()
	per = make([]uint64, len(retentions))

	h := xxhash.New()
	for i := range retentions {
		points, err := w.FetchRange(i, 0, ^uint64(0))
		if err != nil {
			return nil, 0, fmt.Errorf("digest: reading archive %d: %w", i, err)
		}

		ah := xxhash.New()
		buf := make([]byte, 16)
		for _, p := range points {
			binary.BigEndian.PutUint64(buf[0:8], p.Interval)
			binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(p.Value))
			_, _ = ah.Write(buf)
		}
		per[i] = ah.Sum64()

		var idxBuf [8]byte
		binary.BigEndian.PutUint64(idxBuf[:], per[i])
		_, _ = h.Write(idxBuf[:])
	}

	return per, h.Sum64(), nil
}
