// Package normalize cleans customer text and rendered prompts before they reach the LLM
// 1 drop control bytes and invalid UTF-8
// 2 Unicode NFC composition
// 3 strip format characters (zero-width joiners, BOM)
// 4 collapse blank runs: spaces to one space, line breaks to at most one empty line
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Text returns s normalized as described in the package doc
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns)
}

// collapseSpaces squashes whitespace runs. A run with one line break becomes "\n",
// a run with more becomes "\n\n", anything else a single space. Edges are trimmed
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	breaks := 0
	flush := func() {
		if !inWS {
			return
		}
		switch {
		case breaks > 1:
			b.WriteString("\n\n")
		case breaks == 1:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		inWS = false
		breaks = 0
	}
	for _, r := range strings.ReplaceAll(s, "\r\n", "\n") {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				breaks++
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
