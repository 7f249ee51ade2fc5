package m3u8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSimpleMediaPlaylist(t *testing.T) {
	p := &MediaPlaylist{TargetDuration: 10, EndList: true}
	p.Append(&Segment{URI: "seg1.ts", Duration: 9.009})

	assert.Equal(t, "#EXTM3U\n#EXT-X-TARGETDURATION:10\n#EXTINF:9.009,\nseg1.ts\n#EXT-X-ENDLIST\n", p.String())
}

func TestEncodeMediaPlaylistTagOrder(t *testing.T) {
	p := &MediaPlaylist{
		Version:        4,
		Independent:    true,
		Start:          &Start{TimeOffset: -2, Precise: true},
		PType:          PlaylistVOD,
		TargetDuration: 10,
		MediaSequence:  100,
		EndList:        true,
	}
	p.Append(&Segment{URI: "a.ts", Duration: 10, Title: "first"})

	assert.Equal(t, "#EXTM3U\n"+
		"#EXT-X-VERSION:4\n"+
		"#EXT-X-INDEPENDENT-SEGMENTS\n"+
		"#EXT-X-START:TIME-OFFSET=-2,PRECISE=YES\n"+
		"#EXT-X-PLAYLIST-TYPE:VOD\n"+
		"#EXT-X-TARGETDURATION:10\n"+
		"#EXT-X-MEDIA-SEQUENCE:100\n"+
		"#EXTINF:10,first\n"+
		"a.ts\n"+
		"#EXT-X-ENDLIST\n", p.String())
}

func TestEncodeKeyOnlyOnChange(t *testing.T) {
	k1 := &Key{Method: CryptAES, URI: "key1.php"}
	k2 := &Key{Method: CryptNone}
	p := &MediaPlaylist{TargetDuration: 10}
	p.Append(&Segment{URI: "a.ts", Duration: 10, Key: k1})
	p.Append(&Segment{URI: "b.ts", Duration: 10, Key: k1})
	p.Append(&Segment{URI: "c.ts", Duration: 10, Key: k2})

	assert.Equal(t, "#EXTM3U\n"+
		"#EXT-X-TARGETDURATION:10\n"+
		"#EXT-X-KEY:METHOD=AES-128,URI=\"key1.php\"\n"+
		"#EXTINF:10,\na.ts\n"+
		"#EXTINF:10,\nb.ts\n"+
		"#EXT-X-KEY:METHOD=NONE\n"+
		"#EXTINF:10,\nc.ts\n", p.String())
}

func TestEncodeByteRangeAlwaysExplicitOffset(t *testing.T) {
	p := &MediaPlaylist{TargetDuration: 10}
	p.Append(&Segment{URI: "v.ts", Duration: 10, ByteRange: &ByteRange{Length: 75232}})
	p.Append(&Segment{URI: "v.ts", Duration: 10, ByteRange: &ByteRange{Length: 82112, Offset: 752321}})

	out := p.String()
	assert.Contains(t, out, "#EXT-X-BYTERANGE:75232@0\n")
	assert.Contains(t, out, "#EXT-X-BYTERANGE:82112@752321\n")
}

func TestEncodeSimpleMasterPlaylist(t *testing.T) {
	p := &MasterPlaylist{}
	p.Append(&Variant{
		IVariant: IVariant{URI: "low.m3u8", Bandwidth: 1280000, Codecs: "mp4a.40.2"},
		Audio:    "aac",
	})

	assert.Equal(t, "#EXTM3U\n"+
		"#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS=\"mp4a.40.2\",AUDIO=\"aac\"\n"+
		"low.m3u8\n", p.String())
}

func TestEncodeRenditionDefaultAlwaysExplicit(t *testing.T) {
	p := &MasterPlaylist{
		Renditions: []*Rendition{
			{Type: MediaAudio, GroupID: "aac", Name: "English", Default: true, AutoSelect: true, URI: "eng.m3u8"},
			{Type: MediaAudio, GroupID: "aac", Name: "Deutsch", URI: "ger.m3u8"},
		},
	}
	p.Append(&Variant{IVariant: IVariant{URI: "low.m3u8", Bandwidth: 1280000}, Audio: "aac"})

	out := p.String()
	assert.Contains(t, out, `#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",DEFAULT=YES,AUTOSELECT=YES,URI="eng.m3u8"`)
	assert.Contains(t, out, `#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="Deutsch",DEFAULT=NO,URI="ger.m3u8"`)
}

func TestFormatFloatShortest(t *testing.T) {
	assert.Equal(t, "10", formatFloat(10))
	assert.Equal(t, "9.009", formatFloat(9.009))
	assert.Equal(t, "0.000011", formatFloat(0.000011))
	assert.Equal(t, "-2", formatFloat(-2))
}

// encoding reaches a fixed point after one decode: re-decoding the output
// and encoding again must reproduce it byte for byte
func TestEncodeStability(t *testing.T) {
	inputs := []string{
		"#EXTM3U\n" +
			"#EXT-X-VERSION:3\n" +
			"#EXT-X-TARGETDURATION:10\n" +
			"#EXT-X-MEDIA-SEQUENCE:7794\n" +
			"#EXT-X-KEY:METHOD=AES-128,URI=\"https://priv.example.com/key.php?r=52\",IV=0x9c7db8778570d05c3177c349fd9236aa\n" +
			"#EXTINF:15,\n" +
			"fileSequence52-1.ts\n" +
			"#EXTINF:15,\n" +
			"fileSequence52-2.ts\n" +
			"#EXT-X-KEY:METHOD=NONE\n" +
			"#EXTINF:15,\n" +
			"fileSequence53-1.ts\n" +
			"#EXT-X-ENDLIST\n",
		"#EXTM3U\n" +
			"#EXT-X-TARGETDURATION:10\n" +
			"#EXT-X-MAP:URI=\"init.mp4\",BYTERANGE=\"720@0\"\n" +
			"#EXT-X-PROGRAM-DATE-TIME:2014-08-13T13:36:33+00:00\n" +
			"#EXT-X-BYTERANGE:75232@0\n" +
			"#EXTINF:10,with title\n" +
			"#EXT-X-VENDOR-MARK:opaque\n" +
			"video.ts\n",
		"#EXTM3U\n" +
			"#EXT-X-TARGETDURATION:4\n" +
			"#EXT-X-SERVER-CONTROL:CAN-SKIP-UNTIL=24,PART-HOLD-BACK=3.012,CAN-BLOCK-RELOAD=YES\n" +
			"#EXT-X-PART-INF:PART-TARGET=1.004\n" +
			"#EXTINF:4.008,\n" +
			"fileSequence266.mp4\n" +
			"#EXT-X-PART:DURATION=1.004,URI=\"filePart267.0.mp4\"\n" +
			"#EXT-X-PART:DURATION=1.004,URI=\"filePart267.1.mp4\",INDEPENDENT=YES\n" +
			"#EXT-X-PRELOAD-HINT:TYPE=PART,URI=\"filePart267.2.mp4\"\n" +
			"#EXT-X-RENDITION-REPORT:URI=\"../1M/waitForMSN.php\",LAST-MSN=266,LAST-PART=2\n",
		"#EXTM3U\n" +
			"#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"aac\",NAME=\"English\",DEFAULT=YES,AUTOSELECT=YES,URI=\"eng.m3u8\"\n" +
			"#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS=\"mp4a.40.2\",RESOLUTION=1920x1080,AUDIO=\"aac\"\n" +
			"low.m3u8\n" +
			"#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,URI=\"iframe.m3u8\"\n",
	}
	for _, input := range inputs {
		first, err := DecodeString(input)
		require.NoError(t, err)
		once := playlistString(first)

		second, err := DecodeString(once)
		require.NoError(t, err)
		assert.Equal(t, once, playlistString(second), "input: %q", input)
	}
}

func playlistString(p Playlist) string {
	switch v := p.(type) {
	case *MediaPlaylist:
		return v.String()
	case *MasterPlaylist:
		return v.String()
	}
	return ""
}

func TestVariantCustomTagRoundTrip(t *testing.T) {
	original := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		#EXT-X-VENDOR-NOTE:for-this-variant
		low.m3u8
		#EXT-X-STREAM-INF:BANDWIDTH=2560000
		mid.m3u8
	`, 2)
	once := original.String()

	again := decodeMaster(t, once, 2)
	require.Len(t, again.Variants[0].Custom, 1)
	assert.Equal(t, "EXT-X-VENDOR-NOTE", again.Variants[0].Custom[0].Name)
	assert.Empty(t, again.Variants[1].Custom)
	assert.Empty(t, again.Custom)
	assert.Equal(t, once, again.String())
}

func TestRoundTripPreservesSemantics(t *testing.T) {
	original := decodeMedia(t, `
		#EXTM3U
		#EXT-X-TARGETDURATION:15
		#EXT-X-KEY:METHOD=AES-128,URI="key.php"
		#EXTINF:15,one
		one.ts
		#EXT-X-DISCONTINUITY
		#EXTINF:15,two
		two.ts
		#EXT-X-ENDLIST
	`, 2)

	again := decodeMedia(t, original.String(), 2)
	assert.Equal(t, original.TargetDuration, again.TargetDuration)
	assert.Equal(t, original.EndList, again.EndList)
	for i := range original.Segments {
		assert.Equal(t, original.Segments[i].URI, again.Segments[i].URI)
		assert.Equal(t, original.Segments[i].Duration, again.Segments[i].Duration)
		assert.Equal(t, original.Segments[i].Title, again.Segments[i].Title)
		assert.Equal(t, original.Segments[i].Discontinuity, again.Segments[i].Discontinuity)
	}
	assert.Same(t, again.Segments[0].Key, again.Segments[1].Key)
	assert.Equal(t, original.Segments[0].Key.URI, again.Segments[0].Key.URI)
}
