package patch

import "strings"

const (
	lf   = "\n"
	crlf = "\r\n"
)

// usesCRLF reports whether text has Windows line endings. Rules only ever see LF text.
func usesCRLF(text string) bool {
	return strings.Contains(text, crlf)
}

func toLF(text string) string {
	return strings.ReplaceAll(text, crlf, lf)
}

func toCRLF(text string) string {
	return strings.ReplaceAll(toLF(text), lf, crlf)
}
