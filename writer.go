package m3u8

import (
	"bufio"
	"sort"
	"strconv"
	"strings"
)

// formatFloat renders a duration in the shortest form that parses back to
// the same value, so repeated decode/encode cycles never drift.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func byteRangeString(br *ByteRange) string {
	return strconv.FormatInt(br.Length, 10) + "@" + strconv.FormatInt(br.Offset, 10)
}

func writeTag(bw *bufio.Writer, name, value string) {
	bw.WriteByte('#')
	bw.WriteString(name)
	if value != "" {
		bw.WriteByte(':')
		bw.WriteString(value)
	}
	bw.WriteByte('\n')
}

func writeStart(bw *bufio.Writer, s *Start) {
	if s == nil {
		return
	}
	bw.WriteString("#EXT-X-START:TIME-OFFSET=")
	bw.WriteString(formatFloat(s.TimeOffset))
	if s.Precise {
		bw.WriteString(",PRECISE=YES")
	}
	bw.WriteByte('\n')
}

func keyAttrs(k *Key) string {
	var a attrBuf
	a.add("METHOD", k.Method)
	if k.Method != CryptNone {
		a.quoted("URI", k.URI)
		if k.IV != "" {
			a.add("IV", k.IV)
		}
		a.quoted("KEYFORMAT", k.KeyFormat)
		a.quoted("KEYFORMATVERSIONS", k.KeyVersions)
	}
	return a.String()
}

func dateRangeAttrs(dr *DateRange) string {
	var a attrBuf
	a.quoted("ID", dr.ID)
	a.quoted("CLASS", dr.Class)
	a.quoted("START-DATE", dr.StartDate)
	a.quoted("END-DATE", dr.EndDate)
	if dr.Duration > 0 {
		a.add("DURATION", formatFloat(dr.Duration))
	}
	if dr.PlannedDuration > 0 {
		a.add("PLANNED-DURATION", formatFloat(dr.PlannedDuration))
	}
	if dr.SCTE35Cmd != "" {
		a.add("SCTE35-CMD", dr.SCTE35Cmd)
	}
	if dr.SCTE35Out != "" {
		a.add("SCTE35-OUT", dr.SCTE35Out)
	}
	if dr.SCTE35In != "" {
		a.add("SCTE35-IN", dr.SCTE35In)
	}
	if dr.EndOnNext {
		a.add("END-ON-NEXT", "YES")
	}
	// stable output despite map iteration order
	names := make([]string, 0, len(dr.X))
	for name := range dr.X {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.add(name, dr.X[name])
	}
	return a.String()
}

// attrBuf assembles one tag's attribute list in declaration order.
type attrBuf struct {
	sb strings.Builder
}

func (a *attrBuf) add(name, value string) {
	if a.sb.Len() > 0 {
		a.sb.WriteByte(',')
	}
	a.sb.WriteString(name)
	a.sb.WriteByte('=')
	a.sb.WriteString(value)
}

// quoted writes a quoted-string attribute, skipping empty values since an
// absent optional attribute and an empty one read the same.
func (a *attrBuf) quoted(name, value string) {
	if value == "" {
		return
	}
	a.add(name, `"`+value+`"`)
}

func (a *attrBuf) String() string {
	return a.sb.String()
}
