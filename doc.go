// Package m3u8 parses and serializes HLS playlists: master playlists that
// list variant streams and alternative renditions, and media playlists
// that list the ordered media segments of one rendition.
//
// Decode classifies the input line by line, dispatches each tag through a
// registry of handlers, and accumulates "pending" per-segment tags until
// the URI line that closes the segment. The typed model it builds can be
// inspected, mutated and encoded back to playlist text; unknown tags are
// carried through untouched so future protocol revisions do not get lost
// in a round trip.
//
// All Section references in this package are to RFC 8216, Protocol
// Version 7.
//
// An AttributeValue is one of the following:
//
//	o  decimal-integer: an unquoted string of characters from the set
//	   [0..9] expressing an integer in base-10 arithmetic.
//
//	o  hexadecimal-sequence: an unquoted string of characters from the set
//	   [0..9] and [A..F] that is prefixed with 0x or 0X.
//
//	o  decimal-floating-point: an unquoted string of characters from the
//	   set [0..9] and '.' expressing a non-negative floating-point number.
//
//	o  signed-decimal-floating-point: as above plus '-'.
//
//	o  quoted-string: a string of characters within a pair of double
//	   quotes (0x22). Line feed, carriage return and double quote MUST NOT
//	   appear inside. Commas inside the quotes do not separate attributes.
//
//	o  enumerated-string: an unquoted character string from a set that is
//	   explicitly defined by the AttributeName. It never contains double
//	   quotes, commas, or whitespace.
//
//	o  decimal-resolution: two decimal-integers separated by the "x"
//	   character; horizontal pixels first.
package m3u8
