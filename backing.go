package sheaf

import (
	"fmt"
	"io"
	"os"
)

// OpenMode specifies how a backing file should be opened.
type OpenMode int

const (
	// OpenModeRead opens an existing file for reading only.
	OpenModeRead OpenMode = iota

	// OpenModeWrite creates the file, or truncates it if it exists.
	// The container starts out empty.
	OpenModeWrite

	// OpenModeReadWrite opens the file for reading and writing,
	// creating it if it does not exist.
	OpenModeReadWrite
)

// Backing is the seekable text store a container parses once at open time
// and rewrites in full at flush. *os.File implements it; MemFile provides
// an in-memory implementation for caller-assembled content.
type Backing interface {
	io.ReadWriteSeeker

	// Truncate changes the size of the store. It does not move the
	// current position.
	Truncate(size int64) error
}

// openBackingFile maps an OpenMode onto os.OpenFile flags. Write mode still
// opens read-write because the container reads the backing when it parses.
func openBackingFile(path string, mode OpenMode) (*os.File, error) {
	var flag int
	switch mode {
	case OpenModeRead:
		flag = os.O_RDONLY
	case OpenModeWrite:
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case OpenModeReadWrite:
		flag = os.O_RDWR | os.O_CREATE
	}

	return os.OpenFile(path, flag, 0644)
}

// MemFile is an in-memory Backing with os.File stream semantics: reading
// past the end returns io.EOF, writing past the end zero-fills the gap,
// truncating past the end zero-extends.
type MemFile struct {
	buf []byte
	pos int64
}

// NewMemFile returns a MemFile holding a copy of data.
func NewMemFile(data []byte) *MemFile {
	return &MemFile{buf: append([]byte(nil), data...)}
}

// NewMemFileString returns a MemFile holding the given text.
func NewMemFileString(text string) *MemFile {
	return &MemFile{buf: []byte(text)}
}

func (m *MemFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemFile) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if gap := m.pos - int64(len(m.buf)); gap > 0 {
		m.buf = append(m.buf, make([]byte, gap)...)
	}
	n := copy(m.buf[m.pos:], p)
	if n < len(p) {
		m.buf = append(m.buf, p[n:]...)
	}
	m.pos += int64(len(p))
	return len(p), nil
}

func (m *MemFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, fmt.Errorf("seek whence %d: %w", whence, ErrInvalidWhence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, fmt.Errorf("seek to offset %d: %w", pos, ErrInvalidOffset)
	}
	m.pos = pos
	return pos, nil
}

func (m *MemFile) Truncate(size int64) error {
	if size < 0 {
		return fmt.Errorf("truncate to size %d: %w", size, ErrInvalidOffset)
	}
	if grow := size - int64(len(m.buf)); grow > 0 {
		m.buf = append(m.buf, make([]byte, grow)...)
		return nil
	}
	m.buf = m.buf[:size]
	return nil
}

// Bytes returns the current content. The slice is only valid until the
// next mutation.
func (m *MemFile) Bytes() []byte {
	return m.buf
}

// String returns a copy of the current content as a string.
func (m *MemFile) String() string {
	return string(m.buf)
}

// Len returns the content length in bytes.
func (m *MemFile) Len() int64 {
	return int64(len(m.buf))
}
