package sheaf

import "bytes"

// entryID uniquely identifies a section entry within a Sheaf.
// IDs are never reused, so a view holding the ID of a deleted entry is
// detectably stale: the registry lookup fails.
type entryID uint64

// entry is one named section in the container's arena. Views bind entries
// by ID rather than by pointer, and every view operation re-resolves the
// ID against the registry.
type entry struct {
	id   entryID
	file *Sheaf // back-reference to the owning container

	name string
	rank uint64 // creation/parse order, never renumbered
	buf  []byte // full section content, line terminators included
}

// newEntry creates an entry owned by f. The caller registers it.
func newEntry(id entryID, f *Sheaf, name string, rank uint64) *entry {
	return &entry{
		id:   id,
		file: f,
		name: name,
		rank: rank,
	}
}

// size returns the content length in bytes.
func (e *entry) size() int64 {
	return int64(len(e.buf))
}

// serializedSize returns the bytes this entry contributes to a flush:
// '[' + name + ']' + '\n' plus the content.
func (e *entry) serializedSize() int64 {
	return int64(len(e.name)) + 3 + e.size()
}

// readAt copies content starting at pos into p and reports the number of
// bytes copied. Reading at or past the end copies nothing.
func (e *entry) readAt(pos int64, p []byte) int {
	if pos >= int64(len(e.buf)) {
		return 0
	}
	return copy(p, e.buf[pos:])
}

// writeAt overwrites content at pos, extending the buffer when the write
// runs past the end. Writing beyond the end zero-fills the gap first.
// A zero-length write mutates nothing, matching os.File.
func (e *entry) writeAt(pos int64, p []byte) {
	if len(p) == 0 {
		return
	}
	if gap := pos - int64(len(e.buf)); gap > 0 {
		e.buf = append(e.buf, make([]byte, gap)...)
	}
	n := copy(e.buf[pos:], p)
	if n < len(p) {
		e.buf = append(e.buf, p[n:]...)
	}
	e.file.markDirty()
}

// truncate shrinks the content to size, or zero-extends it when size is
// beyond the current end.
func (e *entry) truncate(size int64) {
	if grow := size - int64(len(e.buf)); grow > 0 {
		e.buf = append(e.buf, make([]byte, grow)...)
	} else {
		e.buf = e.buf[:size]
	}
	e.file.markDirty()
}

// splice replaces the byte range [start, end) with repl, resizing the
// content as needed.
func (e *entry) splice(start, end int64, repl []byte) {
	out := make([]byte, 0, int64(len(e.buf))-(end-start)+int64(len(repl)))
	out = append(out, e.buf[:start]...)
	out = append(out, repl...)
	out = append(out, e.buf[end:]...)
	e.buf = out
	e.file.markDirty()
}

// lineEnd returns the end offset (exclusive) of the line containing pos:
// one past the next '\n', or the end of content for an unterminated final
// line.
func (e *entry) lineEnd(pos int64) int64 {
	if i := bytes.IndexByte(e.buf[pos:], '\n'); i >= 0 {
		return pos + int64(i) + 1
	}
	return int64(len(e.buf))
}

// lineCount returns the number of line terminators in the content.
func (e *entry) lineCount() int64 {
	return int64(bytes.Count(e.buf, newline))
}

var newline = []byte{'\n'}
