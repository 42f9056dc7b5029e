package markdown

import "strings"

// ParseParagraphs groups lines into paragraphs separated by blank lines and
// returns one "<p>\n...\n</p>" fragment per paragraph. Lines inside a
// paragraph are trimmed and joined with "\n" before inline translation. A
// trailing paragraph without a blank line after it is still emitted.
func ParseParagraphs(lines []string) []string {
	var html []string
	for _, b := range paragraphBlocks(lines, 0, DefaultSpans()) {
		html = append(html, strings.Join(b.HTML, "\n"))
	}
	return html
}

// paragraphBlocks consumes every remaining line. offset is the index of
// lines[0] in the whole document and only affects the reported ranges.
func paragraphBlocks(lines []string, offset int, spans []Span) []Block {
	var (
		blocks    []Block
		paragraph []string
		start     int
	)
	flush := func(end int) {
		if len(paragraph) == 0 {
			return
		}
		text := translate(spans, strings.Join(paragraph, "\n"))
		blocks = append(blocks, Block{
			Kind:  BlockParagraph,
			Start: offset + start,
			End:   offset + end,
			HTML:  []string{"<p>", text, "</p>"},
		})
		paragraph = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush(i)
			continue
		}
		if len(paragraph) == 0 {
			start = i
		}
		paragraph = append(paragraph, line)
	}
	flush(len(lines))
	return blocks
}
