package rnaseqprep

import (
	"bytes"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Preferred over any other candidate the detector reports, since header
// names often contain '_' or '-'.
const commonDelimiters = ",\t;|"

// HeaderDelimiter returns the single most likely rune that delimits the
// columns of a header line, assuming a CSV-like file. Only the header is
// inspected because data rows (file paths, regular expressions) are full of
// punctuation that would look like delimiters.
func HeaderDelimiter(header string) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(strings.NewReader(header+"\n"), '"')

	var fallback rune
	for _, delim := range delimiters {
		runes := []rune(delim)
		if len(runes) != 1 || runes[0] == '#' {
			continue
		}
		if strings.ContainsRune(commonDelimiters, runes[0]) {
			return runes[0]
		}
		if fallback == 0 {
			fallback = runes[0]
		}
	}

	// A common delimiter that is present beats an exotic guess.
	for _, r := range commonDelimiters {
		if strings.ContainsRune(header, r) {
			return r
		}
	}

	if fallback != 0 {
		return fallback
	}

	return ','
}

// FirstDataLine returns the first line of b that is neither blank nor a #
// comment, trimmed of surrounding space. It is empty when there is none.
func FirstDataLine(b []byte) string {
	for len(b) > 0 {
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line, b = b[:i], b[i+1:]
		} else {
			b = nil
		}

		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		return trimmed
	}

	return ""
}
