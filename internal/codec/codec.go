package codec

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wagiedev/linebridge/internal/errors"
)

const (
	// Separator joins character codes within a wire message.
	Separator = ','
	// Terminator ends every wire message.
	Terminator = '\n'
)

// Encode maps each UTF-16 code unit of text to its decimal code and joins
// the codes with commas. It does not append the terminator.
func Encode(text string) string {
	if text == "" {
		return ""
	}

	return string(appendCodes(make([]byte, 0, len(text)*4), text))
}

// AppendLine appends the wire message for text, including the trailing
// newline, to dst and returns the extended buffer.
func AppendLine(dst []byte, text string) []byte {
	dst = appendCodes(dst, text)

	return append(dst, Terminator)
}

func appendCodes(dst []byte, text string) []byte {
	for i, unit := range utf16.Encode([]rune(text)) {
		if i > 0 {
			dst = append(dst, Separator)
		}

		dst = strconv.AppendUint(dst, uint64(unit), 10)
	}

	return dst
}

// Decode parses a wire message (without its terminator) back into text.
//
// Fields in 0..0xFFFF are UTF-16 code units and surrogate pairs are
// recombined; fields in 0x10000..0x10FFFF are taken as code points.
// An empty string decodes to an empty string. Any other malformed input
// returns a *errors.MalformedWireMessageError.
func Decode(wire string) (string, error) {
	if wire == "" {
		return "", nil
	}

	var (
		sb      strings.Builder
		pending []uint16
	)

	sb.Grow(len(wire) / 3)

	flush := func() {
		if len(pending) == 0 {
			return
		}

		for _, r := range utf16.Decode(pending) {
			sb.WriteRune(r)
		}

		pending = pending[:0]
	}

	index := 0

	for field := range strings.SplitSeq(wire, string(Separator)) {
		code, err := parseField(field)
		if err != nil {
			return "", &errors.MalformedWireMessageError{
				Raw:   wire,
				Field: field,
				Index: index,
				Err:   err,
			}
		}

		if code <= 0xFFFF {
			pending = append(pending, uint16(code))
		} else {
			flush()
			sb.WriteRune(rune(code))
		}

		index++
	}

	flush()

	return sb.String(), nil
}

// parseField parses one decimal character code.
func parseField(field string) (uint64, error) {
	if field == "" {
		return 0, strconv.ErrSyntax
	}

	code, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, err
	}

	if code > utf8.MaxRune {
		return 0, strconv.ErrRange
	}

	return code, nil
}
