// Package fileutil reads Markdown documents from disk, transparently
// decompressing xz and gzip input, and writes converted output back.
package fileutil

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/markdown2html/core/markdown"
	"github.com/FocuswithJustin/markdown2html/internal/validation"
)

// ErrTooLarge is returned when a document exceeds validation.MaxFileSize.
var ErrTooLarge = errors.New("document too large")

// Document is an input file loaded into memory.
type Document struct {
	Path        string
	Lines       []string
	Size        int64                  // uncompressed size in bytes
	BLAKE3      string                 // hex BLAKE3-256 of the uncompressed content
	Compression validation.Compression // compression detected on disk
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadDocument reads the whole file at path and splits it into lines. Line
// terminators ("\n", "\r\n" or a lone "\r") are removed. xz and gzip files
// are detected by their magic bytes and decompressed.
func ReadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := br.Peek(validation.HeaderSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}

	doc := &Document{
		Path:        path,
		Compression: validation.DetectCompression(header),
	}

	var r io.Reader = br
	switch doc.Compression {
	case validation.CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		r = xr
	case validation.CompressionGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	}

	lr := &io.LimitedReader{R: r, N: validation.MaxFileSize + 1}
	h := blake3.New()
	lines, err := scanLines(io.TeeReader(lr, h))
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, validation.MaxFileSize)
	}

	doc.Lines = lines
	doc.Size = validation.MaxFileSize + 1 - lr.N
	doc.BLAKE3 = fmt.Sprintf("%x", h.Sum(nil))
	return doc, nil
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), validation.MaxFileSize)
	scanner.Split(markdown.ScanLines)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line longer than %d bytes", ErrTooLarge, validation.MaxFileSize)
		}
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
