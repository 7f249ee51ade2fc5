package m3u8

import "fmt"

// ParseError is returned from Decode when the input cannot produce a
// playlist at all: empty input or a missing #EXTM3U header. Every other
// condition is recoverable and surfaces as a Diagnostic instead.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("m3u8: line %d: %s", e.Line, e.Reason)
}

// MalformedAttributeListError reports an attribute list that could not be
// parsed: an unterminated quoted value or a pair without an equals sign.
// The offending tag is kept verbatim as a pass-through tag.
type MalformedAttributeListError struct {
	Line int
	Tag  string
	Attr string
}

func (e *MalformedAttributeListError) Error() string {
	return fmt.Sprintf("malformed attribute list in %s at line %d: %q", e.Tag, e.Line, e.Attr)
}

// StructuralConflictError reports a tag whose kind contradicts the kind the
// playlist already committed to, e.g. EXT-X-STREAM-INF after
// EXT-X-TARGETDURATION. The tag is ignored and parsing continues.
type StructuralConflictError struct {
	Line int
	Tag  string
}

func (e *StructuralConflictError) Error() string {
	return fmt.Sprintf("%s at line %d conflicts with committed playlist kind", e.Tag, e.Line)
}

// TruncatedPlaylistError reports pending per-segment state left over at end
// of input: a dangling EXTINF with no following URI, or a stream-info tag
// never paired with its variant URI. Entities built before the truncation
// point are kept.
type TruncatedPlaylistError struct {
	Line int
	Tag  string
}

func (e *TruncatedPlaylistError) Error() string {
	return fmt.Sprintf("playlist truncated: %s at line %d has no following URI", e.Tag, e.Line)
}

// Diagnostic pairs a recoverable parse condition with the line it occurred
// on. Diagnostics accumulate on the decoded playlist rather than aborting
// the parse.
type Diagnostic struct {
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return d.Err.Error()
}
