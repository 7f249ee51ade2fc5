package m3u8

import (
	"fmt"
	"io"
	"io/ioutil"
)

const (
	// TypeMaster and TypeMedia are returned from Playlist.Type to tell the
	// two decoded playlist kinds apart
	TypeMaster = iota
	TypeMedia

	PlaylistVOD   string = "VOD"
	PlaylistEvent string = "EVENT"

	CryptNone      string = "NONE"
	CryptAES       string = "AES-128"
	CryptSampleAES string = "SAMPLE-AES"

	MediaAudio     string = "AUDIO"
	MediaVideo     string = "VIDEO"
	MediaSubtitles string = "SUBTITLES"
	MediaCaptions  string = "CLOSED-CAPTIONS"
)

const headerTag = "EXTM3U"

// Decode reads a full playlist from reader and builds the typed model. The
// returned Playlist is a *MediaPlaylist or a *MasterPlaylist; recoverable
// oddities in the input are collected on the playlist's Diagnostics rather
// than failing the decode. Only unusable input returns an error.
func Decode(reader io.Reader) (Playlist, error) {
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading m3u8 input: %w", err)
	}
	return decode(data)
}

// DecodeString decodes a playlist held in memory.
func DecodeString(text string) (Playlist, error) {
	return decode([]byte(text))
}

func decode(data []byte) (Playlist, error) {
	lines := newClassifier(data)
	first, ok := lines.next()
	if !ok {
		return nil, &ParseError{Reason: "empty input"}
	}
	if first.kind != lineTag || first.name != headerTag {
		return nil, &ParseError{Line: first.num, Reason: `missing "#EXTM3U" header`}
	}

	b := newBuilder()
	for {
		ln, ok := lines.next()
		if !ok {
			break
		}
		b.feed(ln)
	}
	return b.finish()
}
