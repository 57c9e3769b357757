package runner

import (
	"io"
	"os"
	"sync"
)

// lockedWriter serializes writes coming from the copy goroutines of
// concurrently running commands
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

// syncWriter guards w with mu unless it is a file, which the child
// writes to directly
func syncWriter(w io.Writer, mu *sync.Mutex) io.Writer {
	if _, ok := w.(*os.File); ok {
		return w
	}
	return &lockedWriter{mu: mu, w: w}
}

func syncReader(r io.Reader) io.Reader {
	if _, ok := r.(*os.File); ok {
		return r
	}
	return &lockedReader{r: r}
}
