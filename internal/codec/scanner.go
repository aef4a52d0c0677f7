package codec

import (
	"bufio"
	"bytes"
	"io"
)

// MaxLineSize is the largest wire message NewLineScanner accepts.
const MaxLineSize = 1024 * 1024 // 1MB

// NewLineScanner returns a scanner that yields one wire message per line.
//
// Lines are reassembled across reads, a trailing carriage return is dropped,
// and a final unterminated line is still returned at EOF.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	scanner.Split(scanLines)

	return scanner
}

// scanLines is bufio.ScanLines with the terminator taken from this package.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, Terminator); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte{'\r'}), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte{'\r'}), nil
	}

	return 0, nil, nil
}
