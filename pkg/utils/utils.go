package utils

import (
	"os"
)

// SafeWriteFile writes content through a temp file and renames it into place,
// so readers never observe a half-written file.
func SafeWriteFile(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// TailBuffer is an io.Writer that keeps only the last Max bytes written.
// Script output is unbounded and opaque; for diagnostics the tail is the
// useful part.
type TailBuffer struct {
	Max       int
	buf       []byte
	truncated bool
}

func (b *TailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if b.Max > 0 && len(b.buf) > b.Max {
		b.buf = b.buf[len(b.buf)-b.Max:]
		b.truncated = true
	}
	return len(p), nil
}

func (b *TailBuffer) String() string {
	if b.truncated {
		return "..." + string(b.buf)
	}
	return string(b.buf)
}

func ShortPath(path string) string {
	if len(path) > 50 {
		return "..." + path[len(path)-47:]
	}
	return path
}
