package m3u8

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Type returns media playlist type
func (m *MediaPlaylist) Type() int {
	return TypeMedia
}

// Count returns the number of full segments in the playlist.
func (m *MediaPlaylist) Count() int {
	return len(m.Segments)
}

// Diagnostics returns the recoverable conditions recorded while the
// playlist was decoded, in input order. Empty for hand-built playlists.
func (m *MediaPlaylist) Diagnostics() []Diagnostic {
	return m.diags
}

// Duration returns the sum of all segment durations in seconds. It walks
// the segment list on every call; playlists are mutable, so nothing is
// cached.
func (m *MediaPlaylist) Duration() float64 {
	var total float64
	for _, seg := range m.Segments {
		total += seg.Duration
	}
	return total
}

// Live reports whether the playlist may still grow: no end-list tag and
// not declared VOD.
func (m *MediaPlaylist) Live() bool {
	return !m.EndList && m.PType != PlaylistVOD
}

// SegmentBySequence returns the segment carrying media sequence number n,
// or nil when n falls outside the playlist's window. Sequence numbers are
// monotonic from the declared media-sequence value.
func (m *MediaPlaylist) SegmentBySequence(n int64) *Segment {
	i := n - m.MediaSequence
	if i < 0 || i >= int64(len(m.Segments)) {
		return nil
	}
	return m.Segments[i]
}

// Append adds a segment to the tail of the playlist.
func (m *MediaPlaylist) Append(seg *Segment) {
	m.Segments = append(m.Segments, seg)
}

// Insert places a segment at index i. Media-sequence numbering is NOT
// adjusted; the declared value is the caller's to maintain, mirroring the
// format's own semantics.
func (m *MediaPlaylist) Insert(i int, seg *Segment) {
	if i < 0 || i > len(m.Segments) {
		return
	}
	m.Segments = append(m.Segments, nil)
	copy(m.Segments[i+1:], m.Segments[i:])
	m.Segments[i] = seg
}

// Remove drops the segment at index i. As with Insert, no renumbering.
func (m *MediaPlaylist) Remove(i int) {
	if i < 0 || i >= len(m.Segments) {
		return
	}
	m.Segments = append(m.Segments[:i], m.Segments[i+1:]...)
}

// Close marks the playlist final by setting the end-list flag.
func (m *MediaPlaylist) Close() {
	m.EndList = true
}

// Encode writes the playlist as canonical M3U8 text: header, playlist-wide
// tags in a stable order, then each segment's tags immediately followed by
// its URI. The output is semantically equivalent to the decoded input, not
// byte-identical to it.
func (m *MediaPlaylist) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#EXTM3U\n")
	if m.Version > 0 {
		bw.WriteString("#EXT-X-VERSION:")
		bw.WriteString(strconv.Itoa(m.Version))
		bw.WriteByte('\n')
	}
	if m.Independent {
		bw.WriteString("#EXT-X-INDEPENDENT-SEGMENTS\n")
	}
	writeStart(bw, m.Start)
	if m.AllowCache != "" {
		bw.WriteString("#EXT-X-ALLOW-CACHE:")
		bw.WriteString(m.AllowCache)
		bw.WriteByte('\n')
	}
	if m.PType != "" {
		bw.WriteString("#EXT-X-PLAYLIST-TYPE:")
		bw.WriteString(m.PType)
		bw.WriteByte('\n')
	}
	bw.WriteString("#EXT-X-TARGETDURATION:")
	bw.WriteString(strconv.FormatInt(m.TargetDuration, 10))
	bw.WriteByte('\n')
	if sc := m.ServerControl; sc != nil {
		var a attrBuf
		if sc.CanSkipUntil > 0 {
			a.add("CAN-SKIP-UNTIL", formatFloat(sc.CanSkipUntil))
		}
		if sc.CanSkipDateranges {
			a.add("CAN-SKIP-DATERANGES", "YES")
		}
		if sc.HoldBack > 0 {
			a.add("HOLD-BACK", formatFloat(sc.HoldBack))
		}
		if sc.PartHoldBack > 0 {
			a.add("PART-HOLD-BACK", formatFloat(sc.PartHoldBack))
		}
		if sc.CanBlockReload {
			a.add("CAN-BLOCK-RELOAD", "YES")
		}
		writeTag(bw, "EXT-X-SERVER-CONTROL", a.String())
	}
	if m.PartInf != nil {
		bw.WriteString("#EXT-X-PART-INF:PART-TARGET=")
		bw.WriteString(formatFloat(m.PartInf.PartTarget))
		bw.WriteByte('\n')
	}
	if m.MediaSequence != 0 {
		bw.WriteString("#EXT-X-MEDIA-SEQUENCE:")
		bw.WriteString(strconv.FormatInt(m.MediaSequence, 10))
		bw.WriteByte('\n')
	}
	if m.DiscontinuitySeq != 0 {
		bw.WriteString("#EXT-X-DISCONTINUITY-SEQUENCE:")
		bw.WriteString(strconv.FormatInt(m.DiscontinuitySeq, 10))
		bw.WriteByte('\n')
	}
	if m.IFramesOnly {
		bw.WriteString("#EXT-X-I-FRAMES-ONLY\n")
	}
	if m.Skip != nil {
		bw.WriteString("#EXT-X-SKIP:SKIPPED-SEGMENTS=")
		bw.WriteString(strconv.FormatInt(m.Skip.SkippedSegments, 10))
		bw.WriteByte('\n')
	}
	for _, t := range m.Custom {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}

	var lastKey *Key
	var lastMap *Map
	for _, seg := range m.Segments {
		writeSegment(bw, seg, &lastKey, &lastMap)
	}
	if m.Preload != nil {
		writeSegmentTags(bw, m.Preload, &lastKey, &lastMap)
		for _, t := range m.Preload.Custom {
			bw.WriteString(t.String())
			bw.WriteByte('\n')
		}
	}
	if h := m.PreloadHint; h != nil {
		var a attrBuf
		a.add("TYPE", h.Type)
		a.quoted("URI", h.URI)
		if h.ByteRangeStart > 0 {
			a.add("BYTERANGE-START", strconv.FormatInt(h.ByteRangeStart, 10))
		}
		if h.ByteRangeLength > 0 {
			a.add("BYTERANGE-LENGTH", strconv.FormatInt(h.ByteRangeLength, 10))
		}
		writeTag(bw, "EXT-X-PRELOAD-HINT", a.String())
	}
	for _, r := range m.RenditionReports {
		var a attrBuf
		a.quoted("URI", r.URI)
		a.add("LAST-MSN", strconv.FormatInt(r.LastMSN, 10))
		if r.LastPart > 0 {
			a.add("LAST-PART", strconv.FormatInt(r.LastPart, 10))
		}
		writeTag(bw, "EXT-X-RENDITION-REPORT", a.String())
	}
	if m.EndList {
		bw.WriteString("#EXT-X-ENDLIST\n")
	}
	return bw.Flush()
}

// String returns the encoded playlist,
// implementing the Stringer interface for Printf-like funcs
func (m *MediaPlaylist) String() string {
	var sb strings.Builder
	m.Encode(&sb)
	return sb.String()
}

// writeSegment emits one segment's tags and its URI line. lastKey and
// lastMap track the shared references so key and map tags appear only when
// the reference changes.
func writeSegment(bw *bufio.Writer, seg *Segment, lastKey **Key, lastMap **Map) {
	writeSegmentTags(bw, seg, lastKey, lastMap)
	if seg.ByteRange != nil {
		bw.WriteString("#EXT-X-BYTERANGE:")
		bw.WriteString(byteRangeString(seg.ByteRange))
		bw.WriteByte('\n')
	}
	bw.WriteString("#EXTINF:")
	bw.WriteString(formatFloat(seg.Duration))
	bw.WriteByte(',')
	bw.WriteString(seg.Title)
	bw.WriteByte('\n')
	// opaque tags go between the duration tag and the URI so a re-decode
	// attaches them to the same segment
	for _, t := range seg.Custom {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}
	bw.WriteString(seg.URI)
	bw.WriteByte('\n')
}

func writeSegmentTags(bw *bufio.Writer, seg *Segment, lastKey **Key, lastMap **Map) {
	if seg.Key != nil && seg.Key != *lastKey {
		writeTag(bw, "EXT-X-KEY", keyAttrs(seg.Key))
		*lastKey = seg.Key
	}
	if seg.Map != nil && seg.Map != *lastMap {
		var a attrBuf
		a.quoted("URI", seg.Map.URI)
		if seg.Map.ByteRange != nil {
			a.quoted("BYTERANGE", byteRangeString(seg.Map.ByteRange))
		}
		writeTag(bw, "EXT-X-MAP", a.String())
		*lastMap = seg.Map
	}
	if seg.Discontinuity {
		bw.WriteString("#EXT-X-DISCONTINUITY\n")
	}
	if seg.DateRange != nil {
		writeTag(bw, "EXT-X-DATERANGE", dateRangeAttrs(seg.DateRange))
	}
	if seg.DateTimeRaw != "" {
		bw.WriteString("#EXT-X-PROGRAM-DATE-TIME:")
		bw.WriteString(seg.DateTimeRaw)
		bw.WriteByte('\n')
	}
	if seg.SCTE35 != "" {
		writeTag(bw, "EXT-OATCLS-SCTE35", seg.SCTE35)
	}
	if seg.CueOut != "" {
		writeTag(bw, "EXT-X-CUE-OUT", seg.CueOut)
	}
	if seg.CueOutCont != "" {
		writeTag(bw, "EXT-X-CUE-OUT-CONT", seg.CueOutCont)
	}
	if seg.CueIn {
		bw.WriteString("#EXT-X-CUE-IN\n")
	}
	if seg.Bitrate > 0 {
		bw.WriteString("#EXT-X-BITRATE:")
		bw.WriteString(strconv.FormatInt(seg.Bitrate, 10))
		bw.WriteByte('\n')
	}
	if seg.Gap {
		bw.WriteString("#EXT-X-GAP\n")
	}
	for _, p := range seg.Parts {
		var a attrBuf
		a.add("DURATION", formatFloat(p.Duration))
		a.quoted("URI", p.URI)
		if p.ByteRange != nil {
			a.quoted("BYTERANGE", byteRangeString(p.ByteRange))
		}
		if p.Independent {
			a.add("INDEPENDENT", "YES")
		}
		if p.Gap {
			a.add("GAP", "YES")
		}
		writeTag(bw, "EXT-X-PART", a.String())
	}
}
