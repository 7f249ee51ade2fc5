package m3u8

import (
	"io"
	"time"
)

// Playlist is the interface MasterPlaylist
// and MediaPlaylist fall under
type Playlist interface {
	Type() int
	Count() int
	Encode(w io.Writer) error
	Diagnostics() []Diagnostic
}

// RawTag preserves a tag this package does not recognize, verbatim, at the
// position it was declared. Serialization re-emits it unchanged.
type RawTag struct {
	Name  string
	Value string
}

func (t RawTag) String() string {
	if t.Value == "" {
		return "#" + t.Name
	}
	return "#" + t.Name + ":" + t.Value
}

// ByteRange is a sub-range of a segment resource. The offset is resolved at
// parse time: an omitted offset continues from the end of the previous
// range on the same resource.
type ByteRange struct { // 4.3.2.2
	Length int64
	Offset int64
}

// Key contains information for
// decrypting encrypted segments
type Key struct { // 4.3.2.4
	Method      string
	URI         string
	IV          string
	KeyFormat   string
	KeyVersions string
}

// Map references the Media Initialization Section required to
// parse the segments it applies to
type Map struct { // 4.3.2.5
	URI       string
	ByteRange *ByteRange
}

// DateRange associates a range of time with a set of attributes. Client
// X- attributes are kept verbatim under their declared names.
type DateRange struct { // 4.3.2.7
	ID              string
	Class           string
	StartDate       string
	EndDate         string
	Duration        float64
	PlannedDuration float64
	EndOnNext       bool
	SCTE35Cmd       string
	SCTE35Out       string
	SCTE35In        string
	X               map[string]string
}

// Part is one partial segment of a low-latency playlist.
type Part struct {
	URI         string
	Duration    float64
	Independent bool
	Gap         bool
	ByteRange   *ByteRange
}

// Segment represents an individual
// media segment from a MediaPlaylist
type Segment struct { // 4.3.2
	URI           string
	Duration      float64
	Title         string
	ByteRange     *ByteRange
	Discontinuity bool
	Gap           bool
	Bitrate       int64
	Key           *Key // shared with neighbors until redeclared
	Map           *Map // shared with neighbors until redeclared
	DateTime      time.Time
	DateTimeRaw   string
	DateRange     *DateRange
	Parts         []*Part
	CueOut        string
	CueOutCont    string
	CueIn         bool
	SCTE35        string // OATCLS splice payload announced with the cue
	Custom        []RawTag
}

// Start is the preferred playback start point.
type Start struct { // 4.3.5.2
	TimeOffset float64
	Precise    bool
}

// ServerControl carries the delivery directives a low-latency
// server announces to its clients.
type ServerControl struct {
	CanBlockReload    bool
	CanSkipUntil      float64
	CanSkipDateranges bool
	HoldBack          float64
	PartHoldBack      float64
}

// PartInf is the playlist-wide target duration for partial segments.
type PartInf struct {
	PartTarget float64
}

// PreloadHint tells clients which resource the server expects to publish
// next.
type PreloadHint struct {
	Type            string
	URI             string
	ByteRangeStart  int64
	ByteRangeLength int64
}

// RenditionReport summarizes the live edge of another rendition.
type RenditionReport struct {
	URI      string
	LastMSN  int64
	LastPart int64
}

// Skip replaces segments skipped by a delta update.
type Skip struct {
	SkippedSegments int64
}

// MediaPlaylist represents a MediaPlaylist M3U8 file
type MediaPlaylist struct { // 4.3.3
	Segments         []*Segment
	Keys             []*Key // canonical instances, declaration order
	Maps             []*Map
	TargetDuration   int64
	MediaSequence    int64
	DiscontinuitySeq int64 // defaults to 0
	PType            string
	EndList          bool
	IFramesOnly      bool
	Independent      bool
	AllowCache       string // legacy YES/NO, kept verbatim
	Start            *Start
	ServerControl    *ServerControl
	PartInf          *PartInf
	PreloadHint      *PreloadHint
	RenditionReports []*RenditionReport
	Skip             *Skip
	Preload          *Segment // parts accumulated past the last full segment
	Version          int
	Custom           []RawTag

	diags []Diagnostic
}

// Resolution contains the width and
// height of a MasterPlaylist stream
type Resolution struct { // 4.3.4.2
	Width  int64
	Height int64
}

// IVariant represents the "EXT-X-I-FRAME-STREAM-INF" type
type IVariant struct { // 4.3.4.3
	URI          string
	Bandwidth    int64
	BandwidthAvg int64
	Codecs       string
	Resolution   *Resolution
	Video        string
	HDCPLevel    string
}

// Variant represents the EXT-X-STREAM-INF type
type Variant struct { // 4.3.4.2
	IVariant
	ProgramID      int64 // Removed in Protocol 6
	FrameRate      float64
	Name           string
	Audio          string
	Subtitles      string
	ClosedCaptions string
	Custom         []RawTag
}

// Rendition contains alternative renditions
// of the same content in the Master Playlist
type Rendition struct { // 4.3.4.1
	Type            string
	URI             string
	GroupID         string
	Language        string
	AssocLanguage   string
	Name            string
	Default         bool
	AutoSelect      bool
	Forced          bool
	InstreamID      string
	Characteristics string
	Channels        string
}

// ContentSteering points clients at the steering manifest that ranks
// pathway variants.
type ContentSteering struct {
	ServerURI string
	PathwayID string
}

// SessionData carries arbitrary session metadata; a playlist may hold
// several entries as long as DATA-ID and LANGUAGE pairs stay unique
type SessionData struct { // 4.3.4.4
	DataID   string
	Value    string
	URI      string
	Language string
}

// MasterPlaylist represents a Master Playlist M3U8 file
type MasterPlaylist struct { // 4.3.4
	Variants        []*Variant
	IVariants       []*IVariant
	Renditions      []*Rendition
	SessionData     []*SessionData
	SessionKeys     []*Key
	ContentSteering *ContentSteering
	Independent     bool
	Start           *Start
	Version         int
	Custom          []RawTag

	diags []Diagnostic
}
