package m3u8

// buildState tracks how far the builder has come in deciding what it is
// parsing. The first kind-discriminating tag commits the kind; after that,
// tags implying the other kind are conflicts.
type buildState int

const (
	stateDetermining buildState = iota
	stateMedia
	stateMaster
)

// builder is the parsing state machine. Classified lines go in through
// feed; finish returns the committed playlist together with everything the
// builder could not place.
type builder struct {
	state  buildState
	media  *MediaPlaylist
	master *MasterPlaylist

	// fields legal in both kinds, flushed into the result on finish
	version     int
	independent bool
	start       *Start
	custom      []RawTag

	// pending-state accumulator: attributes declared for the next segment.
	// key and xmap persist across segments, everything else is consumed
	// when a URI line closes the segment.
	pend      *Segment
	pendLine  int
	expectSeg bool
	key       *Key
	xmap      *Map

	variant     *Variant // stream-info waiting for its variant URI
	variantLine int

	rangeEnd     int64 // running byterange end for offset chaining
	partRangeEnd int64

	diags []Diagnostic
	line  int
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) diag(err error) {
	b.diags = append(b.diags, Diagnostic{Line: b.line, Err: err})
}

// segment returns the segment under accumulation, creating it on the first
// pending tag after the previous segment closed.
func (b *builder) segment(ln line) *Segment {
	if b.pend == nil {
		b.pend = new(Segment)
		b.pendLine = ln.num
	}
	return b.pend
}

// commit locks the builder to kind, allocating the matching playlist. It
// reports false when kind contradicts an earlier commitment, in which case
// the caller must drop the tag.
func (b *builder) commit(kind kindHint, ln line) bool {
	want := stateMedia
	if kind == kindMaster {
		want = stateMaster
	}
	switch b.state {
	case stateDetermining:
		b.state = want
		if want == stateMedia {
			b.media = new(MediaPlaylist)
		} else {
			b.master = new(MasterPlaylist)
		}
		return true
	case want:
		return true
	}
	b.diag(&StructuralConflictError{Line: ln.num, Tag: "#" + ln.name})
	return false
}

func (b *builder) feed(ln line) {
	b.line = ln.num
	switch ln.kind {
	case lineComment:
		// not meaningful for playback
	case lineURI:
		b.uri(ln)
	case lineTag:
		b.tag(ln)
	}
}

func (b *builder) tag(ln line) {
	h, known := tagTable[ln.name]
	if !known {
		b.passThrough(RawTag{Name: ln.name, Value: ln.val})
		return
	}
	var attrs Attributes
	if h.shape == shapeAttrs {
		var err error
		attrs, err = parseAttributes("#"+ln.name, ln.val, ln.num)
		if err != nil {
			// the tag is unusable but not worth losing
			b.diag(err)
			b.passThrough(RawTag{Name: ln.name, Value: ln.val})
			return
		}
	}
	if h.kind != kindNeutral && !b.commit(h.kind, ln) {
		return
	}
	h.apply(b, ln, attrs)
}

// passThrough records an opaque tag on the nearest owning entity: the
// pending segment or variant when one is open, the playlist otherwise.
func (b *builder) passThrough(t RawTag) {
	switch {
	case b.pend != nil:
		b.pend.Custom = append(b.pend.Custom, t)
	case b.variant != nil:
		b.variant.Custom = append(b.variant.Custom, t)
	case b.state == stateMedia:
		b.media.Custom = append(b.media.Custom, t)
	case b.state == stateMaster:
		b.master.Custom = append(b.master.Custom, t)
	default:
		b.custom = append(b.custom, t)
	}
}

func (b *builder) uri(ln line) {
	if b.variant != nil {
		b.variant.URI = ln.raw
		b.master.Variants = append(b.master.Variants, b.variant)
		b.variant = nil
		return
	}
	if b.state == stateMaster {
		// a variant URI needs a preceding stream-info tag
		return
	}
	if !b.expectSeg {
		// bare URI with no EXTINF: nothing declared for it yet
		return
	}
	seg := b.pend
	b.pend, b.expectSeg = nil, false
	seg.URI = ln.raw
	seg.Key = b.key
	seg.Map = b.xmap
	b.partRangeEnd = 0
	b.media.Segments = append(b.media.Segments, seg)
}

func (b *builder) finish() (Playlist, error) {
	if b.variant != nil {
		b.diags = append(b.diags, Diagnostic{
			Line: b.variantLine,
			Err:  &TruncatedPlaylistError{Line: b.variantLine, Tag: "#EXT-X-STREAM-INF"},
		})
	}
	if b.pend != nil && b.state == stateMedia {
		if len(b.pend.Parts) > 0 && b.pend.URI == "" {
			// low-latency live edge: parts published ahead of the full segment
			b.pend.Key = b.key
			b.pend.Map = b.xmap
			b.media.Preload = b.pend
		} else if b.expectSeg {
			b.diags = append(b.diags, Diagnostic{
				Line: b.pendLine,
				Err:  &TruncatedPlaylistError{Line: b.pendLine, Tag: "#EXTINF"},
			})
		}
	}

	if b.state == stateMaster {
		m := b.master
		m.Version = b.version
		m.Independent = b.independent
		m.Start = b.start
		m.Custom = append(b.custom, m.Custom...)
		m.diags = b.diags
		return m, nil
	}

	// an input that never discriminates decodes as an empty media playlist
	m := b.media
	if m == nil {
		m = new(MediaPlaylist)
	}
	m.Version = b.version
	m.Independent = b.independent
	m.Start = b.start
	m.Custom = append(b.custom, m.Custom...)
	m.diags = b.diags
	return m, nil
}
