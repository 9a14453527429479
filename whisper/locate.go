package whisper

// locate is the point locator (C6): given an archive and a timestamp,
// it computes the canonical bucket-start interval and the file offset
// of the ring slot that holds it. All arithmetic is unsigned 64-bit,
// per spec.md §4.6. It performs no I/O.
func locate(a Archive, timestamp uint64) (interval uint64, offset uint32) {
	spp := uint64(a.SecondsPerPoint)
	interval = timestamp - (timestamp % spp)
	slotIndex := (interval % a.retention) / spp
	offset = a.Offset + uint32(slotIndex)*pointSize
	return interval, offset
}
