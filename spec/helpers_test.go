package spec

import "strings"

// bufString renders w's writeTo output, for asserting against the same
// string-building code path String() uses.
func bufString(w stringWriter) string {
	var buf strings.Builder
	w.writeTo(&buf)
	return buf.String()
}
