package markdown

import (
	"regexp"
	"strings"
)

// ListKind selects the list variant handled by ParseList.
type ListKind int

const (
	// Unordered lists are introduced by a bullet marker such as "- ".
	Unordered ListKind = iota
	// Ordered lists are introduced by digits followed by ". ".
	Ordered
)

// Tag returns the HTML element name for the list kind.
func (k ListKind) Tag() string {
	if k == Ordered {
		return "ol"
	}
	return "ul"
}

func (k ListKind) String() string {
	if k == Ordered {
		return "ordered"
	}
	return "unordered"
}

// DefaultUnorderedMarkers are the accepted unordered bullets. "* " is an
// alternate spelling of "- ".
var DefaultUnorderedMarkers = []string{"- ", "* "}

var orderedItemPattern = regexp.MustCompile(`^\d+\.\s`)

// IsOrderedItem reports whether line starts with digits, a period and
// whitespace.
func IsOrderedItem(line string) bool {
	return orderedItemPattern.MatchString(line)
}

// listRule holds what differs between the list variants.
type listRule struct {
	kind      ListKind
	qualifies func(line string) bool
	item      func(line string) string
}

func unorderedRule(markers []string) listRule {
	marker := func(line string) string {
		for _, m := range markers {
			if strings.HasPrefix(line, m) {
				return m
			}
		}
		return ""
	}
	return listRule{
		kind:      Unordered,
		qualifies: func(line string) bool { return marker(line) != "" },
		item: func(line string) string {
			return strings.TrimSpace(line[len(marker(line)):])
		},
	}
}

func orderedRule() listRule {
	return listRule{
		kind:      Ordered,
		qualifies: IsOrderedItem,
		item: func(line string) string {
			_, rest, _ := strings.Cut(line, ".")
			return strings.TrimSpace(rest)
		},
	}
}

// parseList consumes qualifying lines from index on. Lines are compared after
// trimming surrounding whitespace, the same way the dispatcher sees them.
func parseList(lines []string, index int, rule listRule, spans []Span) ([]string, int) {
	tag := rule.kind.Tag()
	html := []string{"<" + tag + ">"}
	for index < len(lines) {
		line := strings.TrimSpace(lines[index])
		if !rule.qualifies(line) {
			break
		}
		html = append(html, "<li>"+translate(spans, rule.item(line))+"</li>")
		index++
	}
	html = append(html, "</"+tag+">")
	return html, index
}

// ParseList emits a list block starting at lines[index] and returns the HTML
// lines together with the index of the first line that does not belong to the
// list. Blank and non-qualifying lines end the list without being consumed.
func ParseList(lines []string, index int, kind ListKind) ([]string, int) {
	rule := unorderedRule(DefaultUnorderedMarkers)
	if kind == Ordered {
		rule = orderedRule()
	}
	return parseList(lines, index, rule, DefaultSpans())
}
