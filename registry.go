package m3u8

import (
	"strconv"
	"strings"
	"time"
)

type valueShape int

const (
	shapeNone  valueShape = iota // tag carries no value
	shapePlain                   // single scalar value after the colon
	shapeAttrs                   // comma-separated attribute list
)

type kindHint int

const (
	kindNeutral kindHint = iota // legal in both playlist kinds
	kindMedia
	kindMaster
)

// tagHandler describes how one tag is parsed and applied. apply is a pure
// state transition over the builder; the control flow in builder.feed never
// special-cases individual tags, so new tags are new table entries.
type tagHandler struct {
	shape valueShape
	kind  kindHint
	apply func(b *builder, ln line, attrs Attributes)
}

var tagTable = map[string]tagHandler{
	// playlist-wide media tags
	"EXT-X-TARGETDURATION":         {shapePlain, kindMedia, tagTargetDuration},
	"EXT-X-MEDIA-SEQUENCE":         {shapePlain, kindMedia, tagMediaSequence},
	"EXT-X-DISCONTINUITY-SEQUENCE": {shapePlain, kindMedia, tagDiscontinuitySequence},
	"EXT-X-ENDLIST":                {shapeNone, kindMedia, tagEndList},
	"EXT-X-PLAYLIST-TYPE":          {shapePlain, kindMedia, tagPlaylistType},
	"EXT-X-I-FRAMES-ONLY":          {shapeNone, kindMedia, tagIFramesOnly},
	"EXT-X-ALLOW-CACHE":            {shapePlain, kindMedia, tagAllowCache},
	"EXT-X-SERVER-CONTROL":         {shapeAttrs, kindMedia, tagServerControl},
	"EXT-X-PART-INF":               {shapeAttrs, kindMedia, tagPartInf},
	"EXT-X-PRELOAD-HINT":           {shapeAttrs, kindMedia, tagPreloadHint},
	"EXT-X-RENDITION-REPORT":       {shapeAttrs, kindMedia, tagRenditionReport},
	"EXT-X-SKIP":                   {shapeAttrs, kindMedia, tagSkip},

	// segment-scoped (pending) media tags
	"EXTINF":                  {shapePlain, kindMedia, tagInf},
	"EXT-X-BYTERANGE":         {shapePlain, kindMedia, tagByteRange},
	"EXT-X-DISCONTINUITY":     {shapeNone, kindMedia, tagDiscontinuity},
	"EXT-X-KEY":               {shapeAttrs, kindMedia, tagKey},
	"EXT-X-MAP":               {shapeAttrs, kindMedia, tagMap},
	"EXT-X-PROGRAM-DATE-TIME": {shapePlain, kindMedia, tagProgramDateTime},
	"EXT-X-DATERANGE":         {shapeAttrs, kindMedia, tagDateRange},
	"EXT-X-GAP":               {shapeNone, kindMedia, tagGap},
	"EXT-X-BITRATE":           {shapePlain, kindMedia, tagBitrate},
	"EXT-X-PART":              {shapeAttrs, kindMedia, tagPart},
	"EXT-X-CUE-OUT":           {shapePlain, kindMedia, tagCueOut},
	"EXT-X-CUE-OUT-CONT":      {shapePlain, kindMedia, tagCueOutCont},
	"EXT-X-CUE-IN":            {shapeNone, kindMedia, tagCueIn},
	"EXT-OATCLS-SCTE35":       {shapePlain, kindMedia, tagOatclsSCTE35},

	// master playlist tags
	"EXT-X-MEDIA":              {shapeAttrs, kindMaster, tagMedia},
	"EXT-X-STREAM-INF":         {shapeAttrs, kindMaster, tagStreamInf},
	"EXT-X-I-FRAME-STREAM-INF": {shapeAttrs, kindMaster, tagIFrameStreamInf},
	"EXT-X-SESSION-DATA":       {shapeAttrs, kindMaster, tagSessionData},
	"EXT-X-SESSION-KEY":        {shapeAttrs, kindMaster, tagSessionKey},
	"EXT-X-CONTENT-STEERING":   {shapeAttrs, kindMaster, tagContentSteering},

	// tags legal in either kind
	"EXT-X-VERSION":              {shapePlain, kindNeutral, tagVersion},
	"EXT-X-INDEPENDENT-SEGMENTS": {shapeNone, kindNeutral, tagIndependentSegments},
	"EXT-X-START":                {shapeAttrs, kindNeutral, tagStart},
}

func tagTargetDuration(b *builder, ln line, _ Attributes) {
	if v, err := strconv.ParseInt(strings.TrimSpace(ln.val), 10, 64); err == nil {
		b.media.TargetDuration = v
	}
}

func tagMediaSequence(b *builder, ln line, _ Attributes) {
	if v, err := strconv.ParseInt(strings.TrimSpace(ln.val), 10, 64); err == nil {
		b.media.MediaSequence = v
	}
}

func tagDiscontinuitySequence(b *builder, ln line, _ Attributes) {
	if v, err := strconv.ParseInt(strings.TrimSpace(ln.val), 10, 64); err == nil {
		b.media.DiscontinuitySeq = v
	}
}

func tagEndList(b *builder, _ line, _ Attributes) {
	b.media.EndList = true
}

func tagPlaylistType(b *builder, ln line, _ Attributes) {
	b.media.PType = strings.ToUpper(strings.TrimSpace(ln.val))
}

func tagIFramesOnly(b *builder, _ line, _ Attributes) {
	b.media.IFramesOnly = true
}

func tagAllowCache(b *builder, ln line, _ Attributes) {
	b.media.AllowCache = strings.ToUpper(strings.TrimSpace(ln.val))
}

func tagServerControl(b *builder, _ line, attrs Attributes) {
	sc := &ServerControl{CanBlockReload: attrs.Yes("CAN-BLOCK-RELOAD")}
	sc.CanSkipDateranges = attrs.Yes("CAN-SKIP-DATERANGES")
	sc.CanSkipUntil, _ = attrs.Float("CAN-SKIP-UNTIL")
	sc.HoldBack, _ = attrs.Float("HOLD-BACK")
	sc.PartHoldBack, _ = attrs.Float("PART-HOLD-BACK")
	b.media.ServerControl = sc
}

func tagPartInf(b *builder, _ line, attrs Attributes) {
	target, _ := attrs.Float("PART-TARGET")
	b.media.PartInf = &PartInf{PartTarget: target}
}

func tagPreloadHint(b *builder, _ line, attrs Attributes) {
	h := &PreloadHint{
		Type: attrs.Enum("TYPE"),
		URI:  attrs.Quoted("URI"),
	}
	h.ByteRangeStart, _ = attrs.Int("BYTERANGE-START")
	h.ByteRangeLength, _ = attrs.Int("BYTERANGE-LENGTH")
	b.media.PreloadHint = h
}

func tagRenditionReport(b *builder, _ line, attrs Attributes) {
	r := &RenditionReport{URI: attrs.Quoted("URI")}
	r.LastMSN, _ = attrs.Int("LAST-MSN")
	r.LastPart, _ = attrs.Int("LAST-PART")
	b.media.RenditionReports = append(b.media.RenditionReports, r)
}

func tagSkip(b *builder, _ line, attrs Attributes) {
	n, _ := attrs.Int("SKIPPED-SEGMENTS")
	b.media.Skip = &Skip{SkippedSegments: n}
}

func tagInf(b *builder, ln line, _ Attributes) {
	seg := b.segment(ln)
	val := ln.val
	if comma := strings.IndexByte(val, ','); comma >= 0 {
		seg.Title = val[comma+1:]
		val = val[:comma]
	}
	seg.Duration, _ = strconv.ParseFloat(strings.TrimSpace(val), 64)
	b.expectSeg = true
}

func tagByteRange(b *builder, ln line, _ Attributes) {
	br, hasOffset := parseByteRange(strings.TrimSpace(ln.val))
	if br == nil {
		return
	}
	if !hasOffset {
		br.Offset = b.rangeEnd
	}
	b.rangeEnd = br.Offset + br.Length
	b.segment(ln).ByteRange = br
	b.expectSeg = true
}

func tagDiscontinuity(b *builder, ln line, _ Attributes) {
	b.segment(ln).Discontinuity = true
}

func tagKey(b *builder, _ line, attrs Attributes) {
	key := &Key{
		Method:      attrs.Enum("METHOD"),
		URI:         attrs.Quoted("URI"),
		IV:          attrs.Enum("IV"),
		KeyFormat:   attrs.Quoted("KEYFORMAT"),
		KeyVersions: attrs.Quoted("KEYFORMATVERSIONS"),
	}
	// redeclaration rebinds; segments already emitted keep the old instance
	b.key = key
	b.media.Keys = append(b.media.Keys, key)
}

func tagMap(b *builder, _ line, attrs Attributes) {
	m := &Map{URI: attrs.Quoted("URI")}
	if v := attrs.Quoted("BYTERANGE"); v != "" {
		m.ByteRange, _ = parseByteRange(v)
	}
	b.xmap = m
	b.media.Maps = append(b.media.Maps, m)
}

func tagProgramDateTime(b *builder, ln line, _ Attributes) {
	seg := b.segment(ln)
	seg.DateTimeRaw = strings.TrimSpace(ln.val)
	seg.DateTime = parseDateTime(seg.DateTimeRaw)
}

func tagDateRange(b *builder, ln line, attrs Attributes) {
	dr := &DateRange{
		ID:        attrs.Quoted("ID"),
		Class:     attrs.Quoted("CLASS"),
		StartDate: attrs.Quoted("START-DATE"),
		EndDate:   attrs.Quoted("END-DATE"),
		EndOnNext: attrs.Yes("END-ON-NEXT"),
		SCTE35Cmd: attrs.Hex("SCTE35-CMD"),
		SCTE35Out: attrs.Hex("SCTE35-OUT"),
		SCTE35In:  attrs.Hex("SCTE35-IN"),
	}
	dr.Duration, _ = attrs.Float("DURATION")
	dr.PlannedDuration, _ = attrs.Float("PLANNED-DURATION")
	for name, value := range attrs {
		if strings.HasPrefix(name, "X-") {
			if dr.X == nil {
				dr.X = make(map[string]string)
			}
			dr.X[name] = value
		}
	}
	b.segment(ln).DateRange = dr
}

func tagGap(b *builder, ln line, _ Attributes) {
	b.segment(ln).Gap = true
	b.expectSeg = true
}

func tagBitrate(b *builder, ln line, _ Attributes) {
	if v, err := strconv.ParseInt(strings.TrimSpace(ln.val), 10, 64); err == nil {
		b.segment(ln).Bitrate = v
	}
}

func tagPart(b *builder, ln line, attrs Attributes) {
	p := &Part{
		URI:         attrs.Quoted("URI"),
		Independent: attrs.Yes("INDEPENDENT"),
		Gap:         attrs.Yes("GAP"),
	}
	p.Duration, _ = attrs.Float("DURATION")
	if v := attrs.Quoted("BYTERANGE"); v != "" {
		br, hasOffset := parseByteRange(v)
		if br != nil {
			if !hasOffset {
				br.Offset = b.partRangeEnd
			}
			b.partRangeEnd = br.Offset + br.Length
			p.ByteRange = br
		}
	}
	b.segment(ln).Parts = append(b.segment(ln).Parts, p)
}

func tagCueOut(b *builder, ln line, _ Attributes) {
	b.segment(ln).CueOut = ln.val
}

func tagCueOutCont(b *builder, ln line, _ Attributes) {
	b.segment(ln).CueOutCont = ln.val
}

func tagCueIn(b *builder, ln line, _ Attributes) {
	b.segment(ln).CueIn = true
}

func tagOatclsSCTE35(b *builder, ln line, _ Attributes) {
	b.segment(ln).SCTE35 = ln.val
}

func tagMedia(b *builder, _ line, attrs Attributes) {
	r := &Rendition{
		Type:            attrs.Enum("TYPE"),
		URI:             attrs.Quoted("URI"),
		GroupID:         attrs.Quoted("GROUP-ID"),
		Language:        attrs.Quoted("LANGUAGE"),
		AssocLanguage:   attrs.Quoted("ASSOC-LANGUAGE"),
		Name:            attrs.Quoted("NAME"),
		Default:         attrs.Yes("DEFAULT"),
		AutoSelect:      attrs.Yes("AUTOSELECT"),
		Forced:          attrs.Yes("FORCED"),
		InstreamID:      attrs.Quoted("INSTREAM-ID"),
		Characteristics: attrs.Quoted("CHARACTERISTICS"),
		Channels:        attrs.Quoted("CHANNELS"),
	}
	b.master.Renditions = append(b.master.Renditions, r)
}

func tagStreamInf(b *builder, ln line, attrs Attributes) {
	if b.variant != nil {
		// two stream-info tags with no URI between them: last write wins
		b.diag(&TruncatedPlaylistError{Line: b.variantLine, Tag: "#EXT-X-STREAM-INF"})
	}
	v := &Variant{
		IVariant:  iVariantFromAttrs(attrs),
		Name:      attrs.Quoted("NAME"),
		Audio:     attrs.Quoted("AUDIO"),
		Subtitles: attrs.Quoted("SUBTITLES"),
	}
	v.ProgramID, _ = attrs.Int("PROGRAM-ID")
	v.FrameRate, _ = attrs.Float("FRAME-RATE")
	if cc := attrs.Enum("CLOSED-CAPTIONS"); cc == "NONE" {
		v.ClosedCaptions = cc
	} else {
		v.ClosedCaptions = attrs.Quoted("CLOSED-CAPTIONS")
	}
	b.variant = v
	b.variantLine = ln.num
}

func tagIFrameStreamInf(b *builder, _ line, attrs Attributes) {
	iv := iVariantFromAttrs(attrs)
	iv.URI = attrs.Quoted("URI")
	b.master.IVariants = append(b.master.IVariants, &iv)
}

func iVariantFromAttrs(attrs Attributes) IVariant {
	iv := IVariant{
		Codecs:    attrs.Quoted("CODECS"),
		Video:     attrs.Quoted("VIDEO"),
		HDCPLevel: attrs.Enum("HDCP-LEVEL"),
	}
	iv.Bandwidth, _ = attrs.Int("BANDWIDTH")
	iv.BandwidthAvg, _ = attrs.Int("AVERAGE-BANDWIDTH")
	if w, h, ok := attrs.Resolution("RESOLUTION"); ok {
		iv.Resolution = &Resolution{Width: w, Height: h}
	}
	return iv
}

func tagSessionData(b *builder, _ line, attrs Attributes) {
	b.master.SessionData = append(b.master.SessionData, &SessionData{
		DataID:   attrs.Quoted("DATA-ID"),
		Value:    attrs.Quoted("VALUE"),
		URI:      attrs.Quoted("URI"),
		Language: attrs.Quoted("LANGUAGE"),
	})
}

func tagContentSteering(b *builder, _ line, attrs Attributes) {
	b.master.ContentSteering = &ContentSteering{
		ServerURI: attrs.Quoted("SERVER-URI"),
		PathwayID: attrs.Quoted("PATHWAY-ID"),
	}
}

func tagSessionKey(b *builder, _ line, attrs Attributes) {
	b.master.SessionKeys = append(b.master.SessionKeys, &Key{
		Method:      attrs.Enum("METHOD"),
		URI:         attrs.Quoted("URI"),
		IV:          attrs.Enum("IV"),
		KeyFormat:   attrs.Quoted("KEYFORMAT"),
		KeyVersions: attrs.Quoted("KEYFORMATVERSIONS"),
	})
}

func tagVersion(b *builder, ln line, _ Attributes) {
	if v, err := strconv.Atoi(strings.TrimSpace(ln.val)); err == nil {
		b.version = v
	}
}

func tagIndependentSegments(b *builder, _ line, _ Attributes) {
	b.independent = true
}

func tagStart(b *builder, _ line, attrs Attributes) {
	s := &Start{Precise: attrs.Yes("PRECISE")}
	s.TimeOffset, _ = attrs.Float("TIME-OFFSET")
	b.start = s
}

// parseByteRange parses the length[@offset] form shared by the byterange
// tag and the BYTERANGE attributes of map and part tags.
func parseByteRange(s string) (br *ByteRange, hasOffset bool) {
	length := s
	var offset string
	if at := strings.IndexByte(s, '@'); at >= 0 {
		length, offset = s[:at], s[at+1:]
	}
	n, err := strconv.ParseInt(length, 10, 64)
	if err != nil {
		return nil, false
	}
	br = &ByteRange{Length: n}
	if offset != "" {
		if o, err := strconv.ParseInt(offset, 10, 64); err == nil {
			br.Offset = o
			hasOffset = true
		}
	}
	return br, hasOffset
}

// dateTimeLayouts covers the ISO 8601 shapes seen in real playlists; the
// zone designator is frequently absent.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
}

func parseDateTime(s string) time.Time {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
