package whisper

import (
	"fmt"
	"strconv"
	"strings"
)

// unitNames are the spelled-out unit names and their multipliers
// (spec.md §4.2). Matching is by non-empty case-sensitive prefix, so
// "m", "min", "minu" and "minute" all resolve to the same entry; each
// name starts with a different letter, so a prefix matches at most one.
//
// The "years" multiplier is 365 7-day weeks, not a calendar year — a
// mechanical artifact of the original format preserved bit-exactly for
// compatibility (spec.md §4.2, §9).
var unitNames = []struct {
	name string
	secs uint64
}{
	{"years", 7 * 86400 * 365},
	{"weeks", 7 * 86400},
	{"days", 86400},
	{"hours", 3600},
	{"minutes", 60},
	{"seconds", 1},
}

// unitMultiplier resolves a (possibly empty) unit string to a
// multiplier in seconds. An empty unit means seconds.
func unitMultiplier(unit string) (uint64, error) {
	if unit == "" {
		return 1, nil
	}
	for _, u := range unitNames {
		if strings.HasPrefix(u.name, unit) {
			return u.secs, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSpec, unit)
}

// splitNumberUnit splits "NUMBER UNIT?" into its numeric prefix and
// trailing unit letters.
func splitNumberUnit(s string) (number uint64, unit string, err error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("%w: no leading number in %q", ErrInvalidSpec, s)
	}
	n, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return n, s[i:], nil
}

// ParseArchiveSpec parses one "PRECISION:RETENTION" token (C2).
//
// Left side (PRECISION) yields SecondsPerPoint directly; a missing
// unit means seconds. Right side (RETENTION): with a unit, the number
// is seconds of retention and Points = retention/SecondsPerPoint
// (integer division); without a unit, the number already is the point
// count.
func ParseArchiveSpec(token string) (ArchiveSpec, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return ArchiveSpec{}, fmt.Errorf("%w: missing ':' in %q", ErrInvalidSpec, token)
	}

	precisionNum, precisionUnit, err := splitNumberUnit(parts[0])
	if err != nil {
		return ArchiveSpec{}, err
	}
	precisionMult, err := unitMultiplier(precisionUnit)
	if err != nil {
		return ArchiveSpec{}, err
	}
	secondsPerPoint := precisionNum * precisionMult
	if secondsPerPoint == 0 || secondsPerPoint > 1<<32-1 {
		return ArchiveSpec{}, fmt.Errorf("%w: precision out of range in %q", ErrInvalidSpec, token)
	}

	retentionNum, retentionUnit, err := splitNumberUnit(parts[1])
	if err != nil {
		return ArchiveSpec{}, err
	}

	var points uint64
	if retentionUnit == "" {
		points = retentionNum
	} else {
		retentionMult, err := unitMultiplier(retentionUnit)
		if err != nil {
			return ArchiveSpec{}, err
		}
		retentionSeconds := retentionNum * retentionMult
		points = retentionSeconds / secondsPerPoint
	}
	if points == 0 || points > 1<<32-1 {
		return ArchiveSpec{}, fmt.Errorf("%w: retention out of range in %q", ErrInvalidSpec, token)
	}

	return ArchiveSpec{
		SecondsPerPoint: uint32(secondsPerPoint),
		Points:          uint32(points),
	}, nil
}

// ParseArchiveSpecs parses an ordered sequence of PRECISION:RETENTION
// tokens. An empty sequence is an error.
func ParseArchiveSpecs(tokens []string) ([]ArchiveSpec, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no archive specs given", ErrInvalidSpec)
	}
	specs := make([]ArchiveSpec, len(tokens))
	for i, tok := range tokens {
		spec, err := ParseArchiveSpec(tok)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}
