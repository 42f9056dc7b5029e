package markdown

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/google/go-cmp/cmp"
)

func TestConverter_Lines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "heading",
			lines: []string{"## Section"},
			want:  []string{"<h2>Section</h2>"},
		},
		{
			name:  "dropped heading",
			lines: []string{"####### too deep", "# ok"},
			want:  []string{"<h1>ok</h1>"},
		},
		{
			name:  "unordered then ordered",
			lines: []string{"- a", "1. b"},
			want:  []string{"<ul>", "<li>a</li>", "</ul>", "<ol>", "<li>b</li>", "</ol>"},
		},
		{
			name:  "blank lines between blocks",
			lines: []string{"", "# t", "", "", "- a", ""},
			want:  []string{"<h1>t</h1>", "<ul>", "<li>a</li>", "</ul>"},
		},
		{
			name:  "indented list lines",
			lines: []string{"  - a", "\t- b"},
			want:  []string{"<ul>", "<li>a</li>", "<li>b</li>", "</ul>"},
		},
		{
			name:  "star bullet is unordered",
			lines: []string{"* a", "* b"},
			want:  []string{"<ul>", "<li>a</li>", "<li>b</li>", "</ul>"},
		},
		{
			name:  "paragraph",
			lines: []string{"line1", "line2", "", "line3"},
			want:  []string{"<p>", "line1\nline2", "</p>", "<p>", "line3", "</p>"},
		},
		{
			name:  "empty",
			lines: nil,
			want:  nil,
		},
	}

	c := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Lines(tt.lines)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Once a plain text line is seen, headings and lists are no longer recognised.
func TestConverter_TerminalParagraphMode(t *testing.T) {
	lines := []string{"# Title", "intro", "", "# late heading", "- late item", "1. late number"}
	blocks := New(Config{}).Blocks(lines)

	var kinds []BlockKind
	for _, b := range blocks {
		kinds = append(kinds, b.Kind)
	}
	wantKinds := []BlockKind{BlockHeading, BlockParagraph, BlockParagraph}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("block kinds mismatch (-want +got):\n%s", diff)
	}

	last := blocks[len(blocks)-1]
	if want := "<p>\n# late heading\n- late item\n1. late number\n</p>"; last.String() != want {
		t.Errorf("last block = %q, want %q", last.String(), want)
	}
	if last.Start != 3 || last.End != 6 {
		t.Errorf("last block range = [%d,%d), want [3,6)", last.Start, last.End)
	}
}

func TestConverter_BlockRanges(t *testing.T) {
	blocks := New(Config{}).Blocks([]string{"# h", "", "- a", "- b", "1. c"})
	want := []Block{
		{Kind: BlockHeading, Start: 0, End: 1, HTML: []string{"<h1>h</h1>"}},
		{Kind: BlockUnorderedList, Start: 2, End: 4, HTML: []string{"<ul>", "<li>a</li>", "<li>b</li>", "</ul>"}},
		{Kind: BlockOrderedList, Start: 4, End: 5, HTML: []string{"<ol>", "<li>c</li>", "</ol>"}},
	}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Errorf("Blocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestConverter_DashOnlyMarkers(t *testing.T) {
	c := New(Config{UnorderedMarkers: []string{"- "}})
	got := c.Lines([]string{"* a"})
	want := []string{"<p>", "* a", "</p>"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertString(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "# a\r\n- b\r\n", "<h1>a</h1>\n<ul>\n<li>b</li>\n</ul>\n"},
		{"no trailing newline", "text", "<p>\ntext\n</p>\n"},
		{"only dropped heading", "#######\n", ""},
		{"lone cr", "# a\r- b\r\rtext\r", "<h1>a</h1>\n<ul>\n<li>b</li>\n</ul>\n<p>\ntext\n</p>\n"},
	}
	conv := New(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conv.ConvertString(tt.src); got != tt.want {
				t.Errorf("ConvertString(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestConvert_Golden(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "sample.md"))
	if err != nil {
		t.Fatalf("failed to read input: %v", err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "sample.html"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}

	var buf bytes.Buffer
	if err := New(Config{}).Convert(&buf, SplitLines(string(src))); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_Structure(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "sample.md"))
	if err != nil {
		t.Fatalf("failed to read input: %v", err)
	}
	out := New(Config{}).ConvertString(string(src))

	doc, err := xmlquery.Parse(strings.NewReader("<root>" + out + "</root>"))
	if err != nil {
		t.Fatalf("output is not well formed: %v", err)
	}

	counts := map[string]float64{
		"count(/root/h1)":    1,
		"count(/root/h2)":    1,
		"count(/root/h3)":    1,
		"count(/root/h7)":    0,
		"count(/root/ul/li)": 3,
		"count(/root/ol/li)": 2,
		"count(/root/p)":     2,
		"count(//li/b)":      1,
		"count(//li/em)":     1,
	}
	for query, want := range counts {
		expr := xpath.MustCompile(query)
		got, ok := expr.Evaluate(xmlquery.CreateXPathNavigator(doc)).(float64)
		if !ok {
			t.Fatalf("%s did not evaluate to a number", query)
		}
		if got != want {
			t.Errorf("%s = %v, want %v", query, got, want)
		}
	}

	items := xmlquery.QuerySelectorAll(doc, xpath.MustCompile("/root/ol/li"))
	var texts []string
	for _, n := range items {
		texts = append(texts, n.InnerText())
	}
	if diff := cmp.Diff([]string{"one", "two ool ats"}, texts); diff != "" {
		t.Errorf("ordered items mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestConvert_WriteError(t *testing.T) {
	errDisk := errors.New("disk full")
	err := New(Config{}).Convert(failingWriter{errDisk}, []string{"# a", "b"})
	if !errors.Is(err, errDisk) {
		t.Fatalf("Convert error = %v, want %v", err, errDisk)
	}
	if !strings.Contains(err.Error(), "heading block at line 1") {
		t.Errorf("error %q does not name the failing block", err)
	}
}

func TestConverter_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	New(Config{Logger: logger}).Lines([]string{"####### x", "- a", "text"})

	out := buf.String()
	for _, want := range []string{`"msg":"heading dropped"`, `"heading_level":7`, `"kind":"unordered_list"`, `"msg":"paragraph mode"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb", []string{"a", "b"}},
		{"\n", []string{""}},
		{"a\rb", []string{"a", "b"}},
		{"a\r\rb\r", []string{"a", "", "b"}},
		{"a\n\rb", []string{"a", "", "b"}},
		{strings.Repeat("x", 70000), []string{strings.Repeat("x", 70000)}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitLines(tt.src)); diff != "" {
			t.Errorf("SplitLines(%q) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestBlockKind_String(t *testing.T) {
	tests := map[BlockKind]string{
		BlockHeading:       "heading",
		BlockUnorderedList: "unordered_list",
		BlockOrderedList:   "ordered_list",
		BlockParagraph:     "paragraph",
		BlockKind(42):      "BlockKind(42)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
