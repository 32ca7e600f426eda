package document

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteColumn converts a column counted in UTF-16 code units (the LSP
// default) into a byte column of line. Columns past the end clamp to len(line).
func UTF16ToByteColumn(line string, col int) int {
	units := 0

	for i, r := range line {
		if units >= col {
			return i
		}

		units += utf16.RuneLen(r)
	}

	return len(line)
}

// ByteToUTF16Column converts a byte column of line into UTF-16 code units.
// Columns outside the line clamp to its ends.
func ByteToUTF16Column(line string, col int) int {
	col = max(0, min(col, len(line)))

	units := 0

	for _, r := range line[:col] {
		units += utf16.RuneLen(r)
	}

	return units
}

// RuneToByteColumn converts a column counted in characters into a byte column of line.
func RuneToByteColumn(line string, col int) int {
	offset := 0

	for range col {
		if offset >= len(line) {
			return len(line)
		}

		_, size := utf8.DecodeRuneInString(line[offset:])
		offset += size
	}

	return offset
}
