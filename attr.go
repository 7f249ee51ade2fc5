package m3u8

import (
	"strconv"
	"strings"
)

// Attributes holds one tag's attribute list as defined in Section 4.2.
// Names are normalized to upper case. Values keep their raw form, quotes
// included, so attributes this package does not know about survive a round
// trip untouched.
type Attributes map[string]string

// parseAttributes scans a comma-separated NAME=VALUE list. Commas inside
// double quotes are part of the value, which is why this is a hand-written
// scanner and not a strings.Split. tag and lineno only feed error values.
func parseAttributes(tag, s string, lineno int) (Attributes, error) {
	attrs := make(Attributes)
	i := 0
	n := len(s)
	for i < n {
		for i < n && (s[i] == ',' || s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}

		start := i
		for i < n && s[i] != '=' && s[i] != ',' {
			i++
		}
		if i >= n || s[i] == ',' {
			return nil, &MalformedAttributeListError{Line: lineno, Tag: tag, Attr: s[start:i]}
		}
		name := strings.ToUpper(strings.TrimSpace(s[start:i]))
		i++ // '='

		var value string
		if i < n && s[i] == '"' {
			close := strings.IndexByte(s[i+1:], '"')
			if close < 0 {
				return nil, &MalformedAttributeListError{Line: lineno, Tag: tag, Attr: name}
			}
			value = s[i : i+close+2] // quotes included
			i += close + 2
		} else {
			vstart := i
			for i < n && s[i] != ',' {
				i++
			}
			value = strings.TrimRight(s[vstart:i], " \t")
		}
		attrs[name] = value
	}
	return attrs, nil
}

// Quoted returns the value with surrounding double quotes removed, for
// quoted-string attributes like URI or CODECS.
func (a Attributes) Quoted(name string) string {
	v := a[name]
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// Enum returns the bare value of an enumerated-string attribute.
func (a Attributes) Enum(name string) string {
	return a[name]
}

// Int parses a decimal-integer attribute.
func (a Attributes) Int(name string) (int64, bool) {
	v, err := strconv.ParseInt(strings.Trim(a[name], `"`), 10, 64)
	return v, err == nil
}

// Float parses a decimal or signed-decimal floating-point attribute.
func (a Attributes) Float(name string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Trim(a[name], `"`), 64)
	return v, err == nil
}

// Yes reports whether an enumerated YES/NO attribute is YES.
func (a Attributes) Yes(name string) bool {
	return a[name] == "YES"
}

// Hex returns a hexadecimal-sequence attribute with its 0x prefix intact,
// as used for key IVs and SCTE35 payloads.
func (a Attributes) Hex(name string) string {
	v := a[name]
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		return v
	}
	return ""
}

// Resolution parses a decimal-resolution attribute of the form WxH.
func (a Attributes) Resolution(name string) (width, height int64, ok bool) {
	v := a[name]
	x := strings.IndexAny(v, "xX")
	if x < 0 {
		return 0, 0, false
	}
	w, werr := strconv.ParseInt(v[:x], 10, 64)
	h, herr := strconv.ParseInt(v[x+1:], 10, 64)
	if werr != nil || herr != nil {
		return 0, 0, false
	}
	return w, h, true
}
