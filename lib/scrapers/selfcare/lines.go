package selfcare

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// anchors pointing into the per-line settings pages carry the internal
// line identifier as their third path segment
const lineHrefPrefix = "/nastaveni-tarifu-a-sluzeb/"

type scanState int

const (
	// no candidate identifier in flight
	stateIdle scanState = iota
	// an anchor with a line href was opened, waiting for numeric text
	stateSuspect
)

// ScanLines walks landing page markup and maps the visible phone number
// of each line to the identifier its settings link points at. A single
// forward pass over the token stream, no DOM is built; broken markup
// simply ends the scan with whatever was collected so far.
//
// A candidate identifier is only resolved by numeric text appearing
// directly inside its own anchor: any start or end tag clears it, while
// non-numeric text chunks are skipped since entities can split the
// number across chunks. When the same phone number shows up under two
// anchors the later one wins.
func ScanLines(r io.Reader) map[string]string {
	matches := map[string]string{}
	tokenizer := html.NewTokenizer(r)

	state := stateIdle
	candidate := ""

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF and malformed markup both land here
			return matches

		case html.StartTagToken:
			state = stateIdle
			candidate = ""
			name, hasAttr := tokenizer.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			id, ok := lineIdFromHref(anchorHref(tokenizer))
			if ok {
				state = stateSuspect
				candidate = id
			}

		case html.EndTagToken, html.SelfClosingTagToken:
			state = stateIdle
			candidate = ""

		case html.TextToken:
			if state != stateSuspect {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if !isNumeric(text) {
				continue
			}
			matches[text] = candidate
			state = stateIdle
			candidate = ""
		}
	}
}

func anchorHref(tokenizer *html.Tokenizer) string {
	for {
		key, val, more := tokenizer.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

func lineIdFromHref(href string) (string, bool) {
	if !strings.HasPrefix(href, lineHrefPrefix) {
		return "", false
	}
	segments := strings.Split(href, "/")
	if len(segments) < 3 || !isNumeric(segments[2]) {
		return "", false
	}
	return segments[2], true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
