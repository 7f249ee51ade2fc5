package m3u8

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Type returns master playlist type
func (m *MasterPlaylist) Type() int {
	return TypeMaster
}

// Count returns the number of full variant streams. I-frame variants are
// listed separately and do not count, just as a media playlist's preload
// segment does not count as a segment.
func (m *MasterPlaylist) Count() int {
	return len(m.Variants)
}

// Diagnostics returns the recoverable conditions recorded while the
// playlist was decoded, in input order.
func (m *MasterPlaylist) Diagnostics() []Diagnostic {
	return m.diags
}

// RenditionsFor returns the alternative renditions belonging to groupID.
// A group referenced by a variant but declared nowhere yields an empty
// slice; unresolved references are preserved, not rejected.
func (m *MasterPlaylist) RenditionsFor(groupID string) []*Rendition {
	var out []*Rendition
	for _, r := range m.Renditions {
		if r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out
}

// Append adds a variant stream to the playlist.
func (m *MasterPlaylist) Append(v *Variant) {
	m.Variants = append(m.Variants, v)
}

// Encode writes the playlist as canonical M3U8 text: header, session-wide
// tags, renditions, then each variant's stream-info tag immediately
// followed by its URI.
func (m *MasterPlaylist) Encode(w io.Writer) error {
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
	if cs := m.ContentSteering; cs != nil {
		var a attrBuf
		a.quoted("SERVER-URI", cs.ServerURI)
		a.quoted("PATHWAY-ID", cs.PathwayID)
		writeTag(bw, "EXT-X-CONTENT-STEERING", a.String())
	}
	for _, sd := range m.SessionData {
		var a attrBuf
		a.quoted("DATA-ID", sd.DataID)
		a.quoted("VALUE", sd.Value)
		a.quoted("URI", sd.URI)
		a.quoted("LANGUAGE", sd.Language)
		writeTag(bw, "EXT-X-SESSION-DATA", a.String())
	}
	for _, k := range m.SessionKeys {
		writeTag(bw, "EXT-X-SESSION-KEY", keyAttrs(k))
	}
	for _, r := range m.Renditions {
		writeTag(bw, "EXT-X-MEDIA", renditionAttrs(r))
	}
	for _, t := range m.Custom {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}
	for _, v := range m.Variants {
		writeTag(bw, "EXT-X-STREAM-INF", variantAttrs(v))
		// opaque tags go between the stream-info tag and the URI so a
		// re-decode attaches them to the same variant
		for _, t := range v.Custom {
			bw.WriteString(t.String())
			bw.WriteByte('\n')
		}
		bw.WriteString(v.URI)
		bw.WriteByte('\n')
	}
	for _, iv := range m.IVariants {
		var a attrBuf
		iVariantCommonAttrs(&a, iv)
		a.quoted("URI", iv.URI)
		writeTag(bw, "EXT-X-I-FRAME-STREAM-INF", a.String())
	}
	return bw.Flush()
}

// String returns the encoded playlist,
// implementing the Stringer interface for Printf-like funcs
func (m *MasterPlaylist) String() string {
	var sb strings.Builder
	m.Encode(&sb)
	return sb.String()
}

func renditionAttrs(r *Rendition) string {
	var a attrBuf
	a.add("TYPE", r.Type)
	a.quoted("GROUP-ID", r.GroupID)
	a.quoted("NAME", r.Name)
	a.quoted("LANGUAGE", r.Language)
	a.quoted("ASSOC-LANGUAGE", r.AssocLanguage)
	if r.Default {
		a.add("DEFAULT", "YES")
	} else {
		a.add("DEFAULT", "NO")
	}
	if r.AutoSelect {
		a.add("AUTOSELECT", "YES")
	}
	if r.Forced {
		a.add("FORCED", "YES")
	}
	a.quoted("INSTREAM-ID", r.InstreamID)
	a.quoted("CHARACTERISTICS", r.Characteristics)
	a.quoted("CHANNELS", r.Channels)
	a.quoted("URI", r.URI)
	return a.String()
}

func variantAttrs(v *Variant) string {
	var a attrBuf
	if v.ProgramID > 0 {
		a.add("PROGRAM-ID", strconv.FormatInt(v.ProgramID, 10))
	}
	iVariantCommonAttrs(&a, &v.IVariant)
	if v.FrameRate > 0 {
		a.add("FRAME-RATE", formatFloat(v.FrameRate))
	}
	a.quoted("AUDIO", v.Audio)
	a.quoted("SUBTITLES", v.Subtitles)
	if v.ClosedCaptions == "NONE" {
		a.add("CLOSED-CAPTIONS", v.ClosedCaptions)
	} else {
		a.quoted("CLOSED-CAPTIONS", v.ClosedCaptions)
	}
	a.quoted("NAME", v.Name)
	return a.String()
}

func iVariantCommonAttrs(a *attrBuf, iv *IVariant) {
	a.add("BANDWIDTH", strconv.FormatInt(iv.Bandwidth, 10))
	if iv.BandwidthAvg > 0 {
		a.add("AVERAGE-BANDWIDTH", strconv.FormatInt(iv.BandwidthAvg, 10))
	}
	a.quoted("CODECS", iv.Codecs)
	if iv.Resolution != nil {
		a.add("RESOLUTION", strconv.FormatInt(iv.Resolution.Width, 10)+"x"+strconv.FormatInt(iv.Resolution.Height, 10))
	}
	if iv.HDCPLevel != "" {
		a.add("HDCP-LEVEL", iv.HDCPLevel)
	}
	a.quoted("VIDEO", iv.Video)
}
