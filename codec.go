package linebridge

import "github.com/wagiedev/linebridge/internal/codec"

// Encode converts text to its wire form: the decimal UTF-16 code units of
// text joined with commas, without the trailing newline.
func Encode(text string) string {
	return codec.Encode(text)
}

// Decode converts a wire message (without its newline) back to text.
// Returns *MalformedWireMessageError for anything that is not a comma-joined
// list of character codes.
func Decode(wire string) (string, error) {
	return codec.Decode(wire)
}
