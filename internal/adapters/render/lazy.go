package render

import (
	"io"
	"os"
)

// LazyFile delays opening its file until the first write, so a failed run
// leaves no empty output file behind.
type LazyFile struct {
	path   string
	writer io.WriteCloser
}

// NewLazyFile returns a writer that creates or truncates path on first write.
func NewLazyFile(path string) *LazyFile {
	return &LazyFile{path: path}
}

func (f *LazyFile) Write(p []byte) (int, error) {
	if f.writer == nil {
		w, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return 0, err
		}
		f.writer = w
	}
	return f.writer.Write(p)
}

// Close closes the file if it was opened.
func (f *LazyFile) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}
