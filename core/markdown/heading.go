package markdown

import (
	"strconv"
	"strings"
)

// MaxHeadingLevel is the deepest heading level HTML supports.
const MaxHeadingLevel = 6

// HeadingLevel counts the leading '#' markers of line. No space is required
// after the markers.
func HeadingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level
}

// ParseHeading converts a heading line to <hN>text</hN>. It reports false when
// line has no markers or more than MaxHeadingLevel of them; such lines produce
// no output at all.
func ParseHeading(line string) (string, bool) {
	level := HeadingLevel(line)
	if level < 1 || level > MaxHeadingLevel {
		return "", false
	}
	text := strings.TrimSpace(line[level:])
	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ">" + text + "</" + tag + ">", true
}
