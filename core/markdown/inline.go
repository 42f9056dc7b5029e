package markdown

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// Span is a single inline substitution. Text between the Open and Close
// delimiters is handed to Replace and the whole match, delimiters included,
// is replaced by the result.
type Span struct {
	Name    string
	Open    string
	Close   string
	Replace func(inner string) string

	pattern *regexp.Regexp
}

// NewSpan compiles a span. The match between the delimiters is non-greedy
// and does not cross line breaks.
func NewSpan(name, open, close string, replace func(inner string) string) Span {
	return Span{
		Name:    name,
		Open:    open,
		Close:   close,
		Replace: replace,
		pattern: regexp.MustCompile(regexp.QuoteMeta(open) + `(.*?)` + regexp.QuoteMeta(close)),
	}
}

// Apply runs the substitution once over text. Text without a delimiter pair
// is returned unchanged.
func (s Span) Apply(text string) string {
	pattern := s.pattern
	if pattern == nil {
		pattern = regexp.MustCompile(regexp.QuoteMeta(s.Open) + `(.*?)` + regexp.QuoteMeta(s.Close))
	}

	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(s.Replace(text[m[2]:m[3]]))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// Built-in spans, in pipeline order.
var (
	Bold     = NewSpan("bold", "**", "**", wrapTag("b"))
	Emphasis = NewSpan("emphasis", "__", "__", wrapTag("em"))
	Digest   = NewSpan("digest", "[[", "]]", DigestText)
	Strip    = NewSpan("strip", "((", "))", StripC)
)

// DefaultSpans returns the inline pipeline: bold, emphasis, digest, strip.
func DefaultSpans() []Span {
	return []Span{Bold, Emphasis, Digest, Strip}
}

// Translate applies the default inline pipeline to text.
func Translate(text string) string {
	return translate(DefaultSpans(), text)
}

func translate(spans []Span, text string) string {
	for _, s := range spans {
		text = s.Apply(text)
	}
	return text
}

func wrapTag(tag string) func(string) string {
	return func(inner string) string {
		return "<" + tag + ">" + inner + "</" + tag + ">"
	}
}

// DigestText returns the lowercase hex MD5 digest of the UTF-8 bytes of s.
func DigestText(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// StripC removes every 'c' and 'C' from s.
func StripC(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 'c' || r == 'C' {
			return -1
		}
		return r
	}, s)
}
