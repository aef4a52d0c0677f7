// Package codec converts between text and the line wire format.
//
// A wire message is the decimal code of every UTF-16 code unit of the text,
// joined with commas and terminated by a single newline:
//
//	"hi"  ->  "104,105\n"
//	""    ->  "\n"
//
// Decoding also accepts whole code points above U+FFFF so that peers which
// emit code points instead of code units interoperate.
//
// Inbound streams are reassembled into lines with NewLineScanner before
// decoding, so messages split across reads or coalesced into one read are
// handled.
package codec
