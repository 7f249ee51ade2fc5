package m3u8

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMaster(t *testing.T, str string, count int) *MasterPlaylist {
	playlist, err := Decode(strings.NewReader(str))
	require.NoError(t, err)
	require.Equal(t, TypeMaster, playlist.Type())
	require.Equal(t, count, playlist.Count())
	return playlist.(*MasterPlaylist)
}

func TestSimpleMasterPlaylist(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=1280000
		http://example.com/low.m3u8
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=2560000
		http://example.com/mid.m3u8
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=7680000
		http://example.com/hi.m3u8
		#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=65000,CODECS="mp4a.40.5,avc1.42801e"
		http://example.com/audio-only.m3u8
	`, 4)

	assert := assert.New(t)
	assert.EqualValues(1280000, playlist.Variants[0].Bandwidth)
	assert.Equal("http://example.com/low.m3u8", playlist.Variants[0].URI)
	assert.EqualValues(1, playlist.Variants[0].ProgramID)

	// quoted commas are part of the value, not separators
	assert.Equal("mp4a.40.5,avc1.42801e", playlist.Variants[3].Codecs)
}

func TestMasterPlaylistResolutionAndFrameRate(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=7680000,AVERAGE-BANDWIDTH=6000000,RESOLUTION=1920x1080,FRAME-RATE=29.97,HDCP-LEVEL=TYPE-0
		hi.m3u8
	`, 1)

	v := playlist.Variants[0]
	require.NotNil(t, v.Resolution)
	assert.EqualValues(t, 1920, v.Resolution.Width)
	assert.EqualValues(t, 1080, v.Resolution.Height)
	assert.EqualValues(t, 6000000, v.BandwidthAvg)
	assert.Equal(t, 29.97, v.FrameRate)
	assert.Equal(t, "TYPE-0", v.HDCPLevel)
}

func TestMasterPlaylistRenditions(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",DEFAULT=YES,AUTOSELECT=YES,LANGUAGE="en",URI="eng/prog_index.m3u8"
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="Deutsch",DEFAULT=NO,AUTOSELECT=YES,LANGUAGE="de",URI="ger/prog_index.m3u8"
		#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs",NAME="English",FORCED=NO,LANGUAGE="en",URI="subs_en/prog_index.m3u8"
		#EXT-X-STREAM-INF:BANDWIDTH=1280000,AUDIO="aac",SUBTITLES="subs"
		low/video.m3u8
	`, 1)

	require.Len(t, playlist.Renditions, 3)
	eng := playlist.Renditions[0]
	assert.Equal(t, MediaAudio, eng.Type)
	assert.Equal(t, "English", eng.Name)
	assert.True(t, eng.Default)
	assert.True(t, eng.AutoSelect)
	assert.False(t, playlist.Renditions[1].Default)

	assert.Equal(t, "aac", playlist.Variants[0].Audio)
	assert.Equal(t, "subs", playlist.Variants[0].Subtitles)

	aac := playlist.RenditionsFor("aac")
	require.Len(t, aac, 2)
	assert.Equal(t, "Deutsch", aac[1].Name)
	assert.Empty(t, playlist.RenditionsFor("missing"))
}

func TestMasterPlaylistClosedCaptionsNone(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000,CLOSED-CAPTIONS=NONE
		low.m3u8
		#EXT-X-STREAM-INF:BANDWIDTH=2560000,CLOSED-CAPTIONS="cc1"
		mid.m3u8
	`, 2)

	assert.Equal(t, "NONE", playlist.Variants[0].ClosedCaptions)
	assert.Equal(t, "cc1", playlist.Variants[1].ClosedCaptions)
}

func TestMasterPlaylistIFrameStreams(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low/audio-video.m3u8
		#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=86000,URI="low/iframe.m3u8"
		#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=150000,RESOLUTION=1920x1080,URI="hi/iframe.m3u8"
	`, 1)

	require.Len(t, playlist.IVariants, 2)
	assert.Equal(t, "low/iframe.m3u8", playlist.IVariants[0].URI)
	assert.EqualValues(t, 86000, playlist.IVariants[0].Bandwidth)
	require.NotNil(t, playlist.IVariants[1].Resolution)
	assert.EqualValues(t, 1080, playlist.IVariants[1].Resolution.Height)
}

func TestMasterPlaylistSessionDataAndKeys(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="This is an example",LANGUAGE="en"
		#EXT-X-SESSION-KEY:METHOD=SAMPLE-AES,URI="https://priv.example.com/key.php?r=52"
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low.m3u8
	`, 1)

	require.Len(t, playlist.SessionData, 1)
	assert.Equal(t, "com.example.title", playlist.SessionData[0].DataID)
	assert.Equal(t, "This is an example", playlist.SessionData[0].Value)
	assert.Equal(t, "en", playlist.SessionData[0].Language)

	require.Len(t, playlist.SessionKeys, 1)
	assert.Equal(t, CryptSampleAES, playlist.SessionKeys[0].Method)
}

func TestMasterPlaylistContentSteering(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-CONTENT-STEERING:SERVER-URI="https://example.com/steering",PATHWAY-ID="CDN-A"
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low.m3u8
	`, 1)

	require.NotNil(t, playlist.ContentSteering)
	assert.Equal(t, "https://example.com/steering", playlist.ContentSteering.ServerURI)
	assert.Equal(t, "CDN-A", playlist.ContentSteering.PathwayID)

	again := decodeMaster(t, playlist.String(), 1)
	require.NotNil(t, again.ContentSteering)
	assert.Equal(t, "CDN-A", again.ContentSteering.PathwayID)
}

func TestMasterPlaylistVersionIndependentStart(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-VERSION:7
		#EXT-X-INDEPENDENT-SEGMENTS
		#EXT-X-START:TIME-OFFSET=25.5
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low.m3u8
	`, 1)

	assert.Equal(t, 7, playlist.Version)
	assert.True(t, playlist.Independent)
	require.NotNil(t, playlist.Start)
	assert.Equal(t, 25.5, playlist.Start.TimeOffset)
}

func TestMasterPlaylistDanglingStreamInf(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low.m3u8
		#EXT-X-STREAM-INF:BANDWIDTH=2560000
	`, 1)

	require.Len(t, playlist.Diagnostics(), 1)
	var terr *TruncatedPlaylistError
	require.ErrorAs(t, playlist.Diagnostics()[0].Err, &terr)
}

func TestMasterPlaylistStreamInfLastWriteWins(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		#EXT-X-STREAM-INF:BANDWIDTH=2560000
		mid.m3u8
	`, 1)

	assert.EqualValues(t, 2560000, playlist.Variants[0].Bandwidth)
	require.Len(t, playlist.Diagnostics(), 1)
}

func TestMasterPlaylistMediaTagInMediaPlaylistIsConflict(t *testing.T) {
	playlist, err := DecodeString(strings.Join([]string{
		"#EXTM3U",
		"#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"aac\",NAME=\"English\"",
		"#EXT-X-TARGETDURATION:10",
		"#EXTINF:10,",
		"a.ts",
	}, "\n"))
	require.NoError(t, err)
	assert.Equal(t, TypeMaster, playlist.Type())

	// the media-only tags after the master commitment are conflicts
	require.NotEmpty(t, playlist.Diagnostics())
	var cerr *StructuralConflictError
	require.ErrorAs(t, playlist.Diagnostics()[0].Err, &cerr)
}

func TestMasterPlaylistPassThroughVariantTag(t *testing.T) {
	playlist := decodeMaster(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		#EXT-X-VENDOR-NOTE:for-this-variant
		low.m3u8
	`, 1)

	require.Len(t, playlist.Variants[0].Custom, 1)
	assert.Equal(t, "EXT-X-VENDOR-NOTE", playlist.Variants[0].Custom[0].Name)
}
