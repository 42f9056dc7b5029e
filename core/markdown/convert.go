package markdown

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// BlockKind classifies a contiguous run of input lines.
type BlockKind int

// Block kinds.
const (
	BlockHeading BlockKind = iota
	BlockUnorderedList
	BlockOrderedList
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockUnorderedList:
		return "unordered_list"
	case BlockOrderedList:
		return "ordered_list"
	case BlockParagraph:
		return "paragraph"
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// Block is one emitted unit of output.
type Block struct {
	Kind BlockKind
	// Start and End delimit the consumed input lines, End exclusive.
	Start int
	End   int
	// HTML holds the output lines. A paragraph's middle element may itself
	// contain newlines.
	HTML []string
}

// String returns the block's HTML joined with newlines.
func (b Block) String() string {
	return strings.Join(b.HTML, "\n")
}

// Config controls a Converter.
type Config struct {
	// UnorderedMarkers are the prefixes that start an unordered list item.
	UnorderedMarkers []string
	// Spans is the inline pipeline, applied in order.
	Spans []Span
	// Logger receives debug records. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		UnorderedMarkers: DefaultUnorderedMarkers,
		Spans:            DefaultSpans(),
	}
}

// Converter turns Markdown lines into HTML blocks. A Converter holds no state
// between calls and may be shared.
type Converter struct {
	cfg       Config
	unordered listRule
	ordered   listRule
}

// New returns a Converter for cfg. Zero-valued fields fall back to the
// defaults.
func New(cfg Config) *Converter {
	def := DefaultConfig()
	if cfg.UnorderedMarkers == nil {
		cfg.UnorderedMarkers = def.UnorderedMarkers
	}
	if cfg.Spans == nil {
		cfg.Spans = def.Spans
	}
	return &Converter{
		cfg:       cfg,
		unordered: unorderedRule(cfg.UnorderedMarkers),
		ordered:   orderedRule(),
	}
}

func (c *Converter) logger() *slog.Logger {
	if c.cfg.Logger != nil {
		return c.cfg.Logger
	}
	return slog.Default()
}

// scanState is the dispatcher state. The only transition is from
// stateScanning to stateParagraphTerminal.
type scanState int

const (
	stateScanning scanState = iota
	stateParagraphTerminal
)

// scan walks lines and calls emit for every block in output order. It stops
// at the first error returned by emit.
func (c *Converter) scan(ctx context.Context, lines []string, emit func(Block) error) error {
	log := c.logger()
	state := stateScanning
	i := 0
	for i < len(lines) {
		if state == stateParagraphTerminal {
			for _, b := range paragraphBlocks(lines[i:], i, c.cfg.Spans) {
				if err := c.emit(ctx, b, emit); err != nil {
					return err
				}
			}
			return nil
		}

		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			i++

		case strings.HasPrefix(line, "#"):
			if html, ok := ParseHeading(line); ok {
				b := Block{Kind: BlockHeading, Start: i, End: i + 1, HTML: []string{html}}
				if err := c.emit(ctx, b, emit); err != nil {
					return err
				}
			} else {
				log.DebugContext(ctx, "heading dropped", "line", i+1, "heading_level", HeadingLevel(line))
			}
			i++

		case c.unordered.qualifies(line):
			html, next := parseList(lines, i, c.unordered, c.cfg.Spans)
			if err := c.emit(ctx, Block{Kind: BlockUnorderedList, Start: i, End: next, HTML: html}, emit); err != nil {
				return err
			}
			i = next

		case c.ordered.qualifies(line):
			html, next := parseList(lines, i, c.ordered, c.cfg.Spans)
			if err := c.emit(ctx, Block{Kind: BlockOrderedList, Start: i, End: next, HTML: html}, emit); err != nil {
				return err
			}
			i = next

		default:
			log.DebugContext(ctx, "paragraph mode", "line", i+1)
			state = stateParagraphTerminal
		}
	}
	return nil
}

func (c *Converter) emit(ctx context.Context, b Block, emit func(Block) error) error {
	c.logger().DebugContext(ctx, "block",
		"kind", b.Kind.String(),
		"start", b.Start+1,
		"end", b.End,
	)
	return emit(b)
}

// Blocks classifies lines and returns the emitted blocks in order.
func (c *Converter) Blocks(lines []string) []Block {
	var blocks []Block
	_ = c.scan(context.Background(), lines, func(b Block) error {
		blocks = append(blocks, b)
		return nil
	})
	return blocks
}

// Lines returns the HTML output as a flat list of lines.
func (c *Converter) Lines(lines []string) []string {
	var out []string
	for _, b := range c.Blocks(lines) {
		out = append(out, b.HTML...)
	}
	return out
}

// Convert writes the HTML for lines to w, one block at a time, each block
// followed by a newline.
func (c *Converter) Convert(w io.Writer, lines []string) error {
	return c.ConvertContext(context.Background(), w, lines)
}

// ConvertContext is Convert with a context for log correlation.
func (c *Converter) ConvertContext(ctx context.Context, w io.Writer, lines []string) error {
	return c.scan(ctx, lines, func(b Block) error {
		if _, err := io.WriteString(w, b.String()+"\n"); err != nil {
			return fmt.Errorf("write %s block at line %d: %w", b.Kind, b.Start+1, err)
		}
		return nil
	})
}

// ConvertString converts a whole document held in memory.
func (c *Converter) ConvertString(src string) string {
	var b strings.Builder
	_ = c.Convert(&b, SplitLines(src))
	return b.String()
}

// SplitLines splits src into lines. "\n",
// "\r\n" and a lone "\r" all end a line, terminators are removed, and a final
// terminator does not produce an empty trailing line.
func SplitLines(src string) []string {
	var lines []string
	s := bufio.NewScanner(strings.NewReader(src))
	s.Buffer(nil, len(src)+1)
	s.Split(ScanLines)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines
}

// ScanLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a lone "\r"
// as line terminators.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// "\r" at the end of the buffer; a "\n" may follow.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
