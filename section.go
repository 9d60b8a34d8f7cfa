package sheaf

import (
	"fmt"
	"io"
)

// Section is a stream-like view over one section's content. Views are
// created fresh by every container lookup; any number of them may bind the
// same section, and a write through one is immediately visible to the rest
// because they share the entry's buffer rather than copying it.
//
// A view binds its section by stable ID, not by pointer. Deleting the
// section from the container leaves outstanding views intact in memory but
// makes their next operation fail with ErrStaleView.
type Section struct {
	sheaf *Sheaf

	// Binding and cursor state
	id     entryID
	pos    int64
	closed bool
}

// newSection creates a view over id positioned at 0.
func newSection(s *Sheaf, id entryID) *Section {
	return &Section{sheaf: s, id: id}
}

// entry resolves the view's binding, enforcing view state, container state,
// and entry liveness in that order.
func (v *Section) entry() (*entry, error) {
	if v.closed {
		return nil, ErrViewClosed
	}
	if v.sheaf.closed {
		return nil, ErrSheafClosed
	}
	e, ok := v.sheaf.entries[v.id]
	if !ok {
		return nil, ErrStaleView
	}
	return e, nil
}

// Name returns the section's current name, reflecting renames. It returns
// the empty string when the view is stale or closed.
func (v *Section) Name() string {
	e, err := v.entry()
	if err != nil {
		return ""
	}
	return e.name
}

// Len returns the section's content length in bytes.
func (v *Section) Len() (int64, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	return e.size(), nil
}

// Pos returns the view's current position.
func (v *Section) Pos() int64 {
	return v.pos
}

// Read copies content from the current position into p and advances the
// position. It returns io.EOF at end of content.
func (v *Section) Read(p []byte) (int, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	if v.pos >= e.size() {
		return 0, io.EOF
	}
	n := e.readAt(v.pos, p)
	v.pos += int64(n)
	return n, nil
}

// Text returns everything from the current position to the end of content,
// advancing the position to the end. At end of content it returns "".
func (v *Section) Text() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	if v.pos >= e.size() {
		return "", nil
	}
	text := string(e.buf[v.pos:])
	v.pos = e.size()
	return text, nil
}

// ReadLine returns the next line including its terminator, advancing the
// position past it. A final line without a terminator is returned as-is;
// at end of content ReadLine returns ("", io.EOF).
func (v *Section) ReadLine() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	if v.pos >= e.size() {
		return "", io.EOF
	}
	end := e.lineEnd(v.pos)
	line := string(e.buf[v.pos:end])
	v.pos = end
	return line, nil
}

// Write overwrites content at the current position, extending the section
// when the write runs past the end, and advances the position. Existing
// content beyond the written span is left in place. Writing after a seek
// past the end zero-fills the gap.
func (v *Section) Write(p []byte) (int, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	e.writeAt(v.pos, p)
	v.pos += int64(len(p))
	return len(p), nil
}

// WriteString writes text at the current position. See Write.
func (v *Section) WriteString(text string) (int, error) {
	return v.Write([]byte(text))
}

// Seek moves the view's position. Whence is io.SeekStart, io.SeekCurrent,
// or io.SeekEnd. A seek resolving to a negative position fails with
// ErrInvalidOffset; seeking past the end is allowed (reads there return
// io.EOF and writes zero-fill the gap).
func (v *Section) Seek(offset int64, whence int) (int64, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = v.pos
	case io.SeekEnd:
		base = e.size()
	default:
		return 0, fmt.Errorf("seek whence %d: %w", whence, ErrInvalidWhence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, fmt.Errorf("seek to offset %d: %w", pos, ErrInvalidOffset)
	}
	v.pos = pos
	return pos, nil
}

// Truncate resizes the section's content to size, shrinking it or
// zero-extending it. The view's position does not move; truncating to the
// current position (v.Truncate(v.Pos())) discards everything after the
// cursor.
func (v *Section) Truncate(size int64) error {
	e, err := v.entry()
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("truncate to size %d: %w", size, ErrInvalidOffset)
	}
	e.truncate(size)
	return nil
}

// WriteTo copies everything from the current position to w, advancing the
// position. It implements io.WriterTo, so io.Copy drains a section without
// an intermediate buffer.
func (v *Section) WriteTo(w io.Writer) (int64, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	if v.pos >= e.size() {
		return 0, nil
	}
	rest := e.buf[v.pos:]
	n, err := w.Write(rest)
	v.pos += int64(n)
	if n < len(rest) && err == nil {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// ReadFrom copies all of r into the section at the current position,
// advancing it. It implements io.ReaderFrom, so io.Copy fills a section
// without an intermediate buffer.
func (v *Section) ReadFrom(r io.Reader) (int64, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if len(data) > 0 {
		e.writeAt(v.pos, data)
		v.pos += int64(len(data))
	}
	return int64(len(data)), err
}

// Close marks this view as no longer usable; subsequent operations fail
// with ErrViewClosed. The entry and any sibling views are unaffected.
// Close is idempotent.
func (v *Section) Close() error {
	v.closed = true
	return nil
}

// Lines returns a lazy iterator over the section's lines starting at the
// view's current position.
func (v *Section) Lines() *LineIterator {
	return &LineIterator{view: v}
}

// LineIterator walks a section line by line. It shares the view's position:
// each Next consumes one line, and a Seek on the view between calls
// redirects the iteration.
type LineIterator struct {
	view *Section
	line string
	err  error
}

// Next advances to the next line. It returns false at end of content or on
// error; Err distinguishes the two.
func (it *LineIterator) Next() bool {
	line, err := it.view.ReadLine()
	if err != nil {
		if err != io.EOF {
			it.err = err
		}
		return false
	}
	it.line = line
	return true
}

// Text returns the line most recently read by Next, terminator included.
func (it *LineIterator) Text() string {
	return it.line
}

// Err returns the first non-EOF error encountered by Next.
func (it *LineIterator) Err() error {
	return it.err
}
