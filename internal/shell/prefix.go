package shell

import (
	"bytes"
	"hash/fnv"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the ANSI colors cycled through for project prefixes.
var palette = []lipgloss.Color{"6", "3", "2", "5", "4", "1", "14", "11", "10", "13", "12"}

// prefixStyle returns the style used for a project's prefix.
func prefixStyle(name string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return lipgloss.NewStyle().Foreground(palette[paletteIndex(h.Sum32())])
}

func paletteIndex(sum uint32) int {
	return int(sum % uint32(len(palette)))
}

// SyncWriter serializes writes to an underlying writer. Share one SyncWriter
// between every producer writing to the same destination.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w. A writer that is already a *SyncWriter is returned
// unchanged.
func NewSyncWriter(w io.Writer) *SyncWriter {
	if s, ok := w.(*SyncWriter); ok {
		return s
	}
	return &SyncWriter{w: orDiscard(w)}
}

func (s *SyncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}

// prefixWriter buffers output until a newline and writes each complete line
// with a prefix.
type prefixWriter struct {
	out    *SyncWriter
	prefix []byte
	buf    bytes.Buffer
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	p.buf.Write(b)
	for {
		data := p.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		p.emit(data[:i+1])
		p.buf.Next(i + 1)
	}
	return len(b), nil
}

// Flush writes any trailing partial line.
func (p *prefixWriter) Flush() {
	if p.buf.Len() == 0 {
		return
	}
	line := append(p.buf.Bytes(), '\n')
	p.emit(line)
	p.buf.Reset()
}

func (p *prefixWriter) emit(line []byte) {
	out := make([]byte, 0, len(p.prefix)+len(line))
	out = append(out, p.prefix...)
	out = append(out, line...)
	_, _ = p.out.Write(out)
}
