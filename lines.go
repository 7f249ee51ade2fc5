package m3u8

import (
	"bufio"
	"bytes"
	"strings"
)

type lineKind int

const (
	lineTag lineKind = iota
	lineURI
	lineComment
)

// line is one classified input line. Classification is purely lexical: a
// "#EXT" prefix makes a tag, any other "#" prefix a comment, everything
// else a URI. Tag semantics are the registry's problem.
type line struct {
	kind lineKind
	num  int
	name string // tag name without the leading '#'
	val  string // portion after the ':' separator, "" when absent
	raw  string // full line, trimmed
}

// classifier yields classified lines one at a time. The sequence is finite
// and single-pass; re-parsing needs a fresh classifier over the original
// text.
type classifier interface {
	next() (line, bool)
}

// useFastClassifier selects the index-walking scanner. The bufio-based
// reference scanner stays available as the behavioral contract; tests
// assert the two produce identical sequences.
var useFastClassifier = true

func newClassifier(data []byte) classifier {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if useFastClassifier {
		return &fastClassifier{data: data}
	}
	return newRefClassifier(data)
}

// newRefClassifier sizes the scanner's buffer to the whole input, so a
// line longer than bufio's default token cap cannot end the scan early.
// Reading from an in-memory slice, the scanner cannot fail any other way.
func newRefClassifier(data []byte) *refClassifier {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(nil, len(data)+1)
	return &refClassifier{sc: sc}
}

// classify builds a line from already-trimmed non-blank text.
func classify(text string, num int) line {
	ln := line{num: num, raw: text}
	switch {
	case strings.HasPrefix(text, "#EXT"):
		ln.kind = lineTag
		if i := strings.IndexByte(text, ':'); i >= 0 {
			ln.name = text[1:i]
			ln.val = text[i+1:]
		} else {
			ln.name = text[1:]
		}
	case text[0] == '#':
		ln.kind = lineComment
	default:
		ln.kind = lineURI
	}
	return ln
}

// refClassifier is the reference implementation: a bufio.Scanner with
// per-line whitespace trimming.
type refClassifier struct {
	sc  *bufio.Scanner
	num int
}

func (c *refClassifier) next() (line, bool) {
	for c.sc.Scan() {
		c.num++
		text := strings.TrimSpace(c.sc.Text())
		if text == "" {
			continue
		}
		return classify(text, c.num), true
	}
	return line{}, false
}

// fastClassifier walks the raw buffer by index without a bufio layer. It
// splits on \n exactly as bufio.ScanLines does; a \r before the \n falls
// to the whitespace trim.
type fastClassifier struct {
	data []byte
	pos  int
	num  int
}

func (c *fastClassifier) next() (line, bool) {
	for c.pos < len(c.data) {
		start := c.pos
		for c.pos < len(c.data) && c.data[c.pos] != '\n' {
			c.pos++
		}
		end := c.pos
		if c.pos < len(c.data) {
			c.pos++
		}
		c.num++
		text := strings.TrimSpace(string(c.data[start:end]))
		if text == "" {
			continue
		}
		return classify(text, c.num), true
	}
	return line{}, false
}
