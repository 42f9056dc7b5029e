// Package markdown converts a restricted subset of Markdown into HTML.
//
// The translator is line oriented. Input lines are classified into blocks in a
// single top-down pass:
//
//   - Heading: a line starting with one to six '#' markers
//   - UnorderedList: consecutive lines starting with "- " (or "* ")
//   - OrderedList: consecutive lines starting with digits followed by ". "
//   - Paragraph: everything else, separated by blank lines
//
// # Terminal Paragraph Mode
//
// The first line that is neither blank, a heading nor a list item switches the
// dispatcher into paragraph mode for the rest of the document. Headings and
// list items after that point are emitted as ordinary paragraph text.
//
// # Inline Spans
//
// List items and paragraphs pass through a fixed pipeline of substitutions,
// each rescanning the output of the previous one:
//
//   - **text** becomes <b>text</b>
//   - __text__ becomes <em>text</em>
//   - [[text]] becomes the lowercase hex MD5 digest of text
//   - ((text)) becomes text with every 'c' and 'C' removed
//
// Delimiters match the shortest possible span and never cross a line break.
package markdown
