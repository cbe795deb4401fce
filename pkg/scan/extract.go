// Package scan extracts scalar field values from loosely-structured
// definition and log text. Inputs are scanned heuristically with
// best-effort pattern families, not parsed as a document model:
// malformed or truncated text degrades to "field not found", never to
// an error.
package scan

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// MaxScanWindow is the hard byte cap applied to every scanned block.
// It keeps extraction cost linear and bounded on pathological inputs;
// fields past the cap are simply not found.
const MaxScanWindow = 256 * 1024

// entities undoes the handful of escapes that show up inside
// descriptor text. Anything fancier is left alone.
var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// pattern compiles and caches a regexp. Field names repeat across
// thousands of artifacts, so compilation happens once per variant.
func pattern(expr string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[expr]; ok {
		return re
	}
	re := regexp.MustCompile(expr)
	patternCache[expr] = re
	return re
}

// clip bounds text to the scan window.
func clip(text string) string {
	if len(text) > MaxScanWindow {
		return text[:MaxScanWindow]
	}
	return text
}

// clean trims surrounding whitespace and control characters and
// collapses inner whitespace runs, which tag bodies spanning several
// source lines otherwise carry.
func clean(v string) string {
	v = entities.Replace(v)
	v = strings.TrimFunc(v, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	return collapseSpace(v)
}

// Tag returns the inner text of the first <name>...</name> element
// pair, tolerating namespace prefixes and attributes on the opening
// tag. The inner text may wrap multiple source lines. Empty string
// when the element is absent.
func Tag(text, name string) string {
	v, _, ok := tagAt(clip(text), name)
	if !ok {
		return ""
	}
	return v
}

// TagEnd behaves like Tag but also reports the byte offset just past
// the closing tag, letting callers anchor later extractions after a
// known field.
func TagEnd(text, name string) (string, int, bool) {
	return tagAt(clip(text), name)
}

func tagAt(text, name string) (string, int, bool) {
	q := regexp.QuoteMeta(name)
	re := pattern(fmt.Sprintf(`(?is)<(?:[A-Za-z0-9_.-]+:)?%s(?:\s[^>]*)?>(.*?)</(?:[A-Za-z0-9_.-]+:)?%s\s*>`, q, q))
	m := re.FindStringSubmatchIndex(text)
	if m == nil {
		return "", 0, false
	}
	return clean(text[m[2]:m[3]]), m[1], true
}

// Attr returns the value of the first attr="value" occurrence on any
// element. Single or double quotes are accepted.
func Attr(text, attr string) string {
	return AttrIn(text, "", attr)
}

// AttrIn returns the value of attr on the first occurrence of the
// named element, or on any element when element is empty.
func AttrIn(text, element, attr string) string {
	text = clip(text)
	elem := `[A-Za-z0-9_.:-]+`
	if element != "" {
		elem = `(?:[A-Za-z0-9_.-]+:)?` + regexp.QuoteMeta(element)
	}
	re := pattern(fmt.Sprintf(`(?is)<%s\s[^>]*?\b%s\s*=\s*["']([^"']*)["']`, elem, regexp.QuoteMeta(attr)))
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return clean(m[1])
}

// KeyValue returns the value of the first "key: value" or "key=value"
// line, tolerant of surrounding quotes on the value.
func KeyValue(text, key string) string {
	text = clip(text)
	re := pattern(fmt.Sprintf(`(?im)^\s*"?%s"?\s*[:=]\s*(.+)$`, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.TrimSpace(m[1])
	v = strings.Trim(v, `"'`)
	return clean(v)
}

// Field tries every extraction strategy for the given field-name
// variants, in order of increasing looseness: element pairs first
// (most specific variant first), then attribute-style occurrences,
// then key/value lines. The first non-empty hit wins.
func Field(text string, names ...string) string {
	text = clip(text)
	for _, n := range names {
		if v := Tag(text, n); v != "" {
			return v
		}
	}
	for _, n := range names {
		if v := Attr(text, n); v != "" {
			return v
		}
	}
	for _, n := range names {
		if v := KeyValue(text, n); v != "" {
			return v
		}
	}
	return ""
}

// executingProcess matches the attribution message written at the
// start of every execution log.
const executingProcessMarker = "Executing Process "

// ExecutingProcess returns the process name from the first
// "Executing Process <name>" message in a log blob, or empty when no
// such message exists. Only the first occurrence is consulted.
func ExecutingProcess(text string) string {
	text = clip(text)
	i := strings.Index(text, executingProcessMarker)
	if i < 0 {
		return ""
	}
	rest := text[i+len(executingProcessMarker):]
	if j := strings.IndexAny(rest, "<\r\n"); j >= 0 {
		rest = rest[:j]
	}
	return clean(rest)
}
