package stream

import (
	"encoding/hex"
	"unicode/utf8"
)

func quote(v string) string {
	return string(appendQuoted(make([]byte, 0, len(v)+2), v))
}

// appendQuoted escapes quotes, backslashes, control characters and the
// U+2028/U+2029 separators, which are valid JSON but not valid JavaScript.
func appendQuoted(d []byte, v string) []byte {
	d = append(d, '"')
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		case '\u2028':
			d = append(d, `\u2028`...)
		case '\u2029':
			d = append(d, `\u2029`...)
		default:
			if r < 0x20 {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	return append(d, '"')
}
