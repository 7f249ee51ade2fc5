package m3u8

import (
	"fmt"
	"net/url"
)

// ResolveURI resolves ref against base using standard relative-reference
// resolution. It is a pure function; the URI strings stored in decoded
// playlists always stay exactly as parsed.
func ResolveURI(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base uri %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing relative uri %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

// AbsURI returns the segment URI resolved against base.
func (s *Segment) AbsURI(base string) (string, error) {
	return ResolveURI(base, s.URI)
}

// AbsURI returns the variant playlist URI resolved against base.
func (v *IVariant) AbsURI(base string) (string, error) {
	return ResolveURI(base, v.URI)
}

// AbsURI returns the key URI resolved against base.
func (k *Key) AbsURI(base string) (string, error) {
	return ResolveURI(base, k.URI)
}

// AbsURI returns the rendition URI resolved against base.
func (r *Rendition) AbsURI(base string) (string, error) {
	return ResolveURI(base, r.URI)
}
