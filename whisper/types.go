package whisper

// AggregationMethod selects how a run of finer-archive points is
// folded into one coarser-archive point (C7).
type AggregationMethod uint8

// Valid aggregation methods (spec.md §3 FileHeader.aggregation).
const (
	AggregationAverage AggregationMethod = 1
	AggregationSum     AggregationMethod = 2
	AggregationLast    AggregationMethod = 3
	AggregationMax     AggregationMethod = 4
	AggregationMin     AggregationMethod = 5
)

// String renders the method the way wsp's info table does.
func (m AggregationMethod) String() string {
	switch m {
	case AggregationAverage:
		return "average"
	case AggregationSum:
		return "sum"
	case AggregationLast:
		return "last"
	case AggregationMax:
		return "max"
	case AggregationMin:
		return "min"
	default:
		return "unknown"
	}
}

func (m AggregationMethod) valid() bool {
	return m >= AggregationAverage && m <= AggregationMin
}

// Metadata is the on-disk FileHeader (spec.md §3), 14 bytes,
// big-endian, tightly packed.
type Metadata struct {
	Aggregation  AggregationMethod
	MaxRetention uint64
	XFilesFactor uint8
	ArchiveCount uint32
}

// ArchiveDescriptor is the on-disk archive directory entry (spec.md
// §3), 12 bytes, big-endian, tightly packed.
type ArchiveDescriptor struct {
	Offset          uint32
	SecondsPerPoint uint32
	Points          uint32
}

// Point is one on-disk ring slot (spec.md §3), 16 bytes, big-endian,
// tightly packed. Interval is the canonical bucket-start timestamp;
// zero means the slot has never been written. Value's raw bits are
// the big-endian encoding of an IEEE-754 float64 (see SPEC_FULL.md §0
// on the value-representation decision).
type Point struct {
	Interval uint64
	Value    float64
}

func (p Point) empty() bool {
	return p.Interval == 0
}

// ArchiveSpec is a parsed, pre-validation archive request (C2's
// output, C3's input): one resolution plus how many points of it to
// retain.
type ArchiveSpec struct {
	SecondsPerPoint uint32
	Points          uint32
}

// Retention is the time span this spec covers, in seconds.
func (a ArchiveSpec) Retention() uint64 {
	return uint64(a.SecondsPerPoint) * uint64(a.Points)
}

// Archive is the runtime materialization of one ArchiveDescriptor
// (C5): it adds the derived retention/size fields and a link to the
// next coarser archive in the chain. lowerIdx is -1 for the coarsest
// archive (spec.md §9 "Ownership": the chain owns all archives
// contiguously and lower is expressed as an index, not a pointer).
type Archive struct {
	ArchiveDescriptor
	retention uint64 // SecondsPerPoint * Points, seconds
	size      uint32 // Points * pointSize, bytes
	lowerIdx  int
}

// Retention returns the archive's time span in seconds.
func (a Archive) Retention() uint64 { return a.retention }

// Size returns the archive's ring size in bytes.
func (a Archive) Size() uint32 { return a.size }

// End returns the file offset one past the archive's last byte.
func (a Archive) End() uint32 { return a.Offset + a.size }

// Header is the decoded file header plus archive directory (C5).
type Header struct {
	Metadata Metadata
	Archives []Archive
}

// Clock supplies the current time to the writer (spec.md §9 "Global
// mutable state": no process-global wall clock is referenced directly
// from the core). systemClock is used unless a caller overrides it.
type Clock interface {
	Now() uint64
}

type systemClock struct{}

func (systemClock) Now() uint64 { return uint64(nowUnix()) }
