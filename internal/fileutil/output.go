package fileutil

import (
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// OutputFile is a destination file opened for writing. Output is always plain
// text. It counts the bytes written and keeps a BLAKE3 digest of the content.
type OutputFile struct {
	file   *os.File
	hash   *blake3.Hasher
	n      int64
	closed bool
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*OutputFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &OutputFile{file: f, hash: blake3.New()}, nil
}

// Write implements io.Writer.
func (o *OutputFile) Write(p []byte) (int, error) {
	if o.closed {
		return 0, os.ErrClosed
	}
	n, err := o.file.Write(p)
	o.hash.Write(p[:n])
	o.n += int64(n)
	return n, err
}

// Close closes the file. Closing twice is a no-op.
func (o *OutputFile) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// BytesWritten returns the number of bytes written.
func (o *OutputFile) BytesWritten() int64 { return o.n }

// BLAKE3 returns the hex BLAKE3-256 digest of everything written so far.
func (o *OutputFile) BLAKE3() string {
	return fmt.Sprintf("%x", o.hash.Sum(nil))
}
