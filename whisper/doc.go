// Package whisper implements a fixed-size, round-robin time series
// database file format: a single regular file holding a header
// followed by several archives of increasing retention but decreasing
// precision. New samples land in the highest-precision archive and
// are automatically consolidated into the coarser ones. The file
// never grows after creation.
//
// The format and algorithms follow the classic Whisper/RRD lineage:
// see Create, Open, (*Whisper).Set and (*Whisper).Get.
package whisper
