// Package textutil provides byte-level helpers for source files read from
// disk: binary detection and line-ending handling.
package textutil

import "bytes"

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// Line endings.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// LineEnding reports the line ending of the first line of data. Data without
// any newline is treated as LF.
func LineEnding(data []byte) string {
	idx := bytes.IndexByte(data, '\n')
	if idx > 0 && data[idx-1] == '\r' {
		return CRLF
	}

	return LF
}
