package sheaf

import "io"

// serialize assembles the full backing text: for each section in ascending
// rank, the header line followed by the content buffer verbatim.
func (s *Sheaf) serialize() []byte {
	var size int64
	for _, id := range s.order {
		size += s.entries[id].serializedSize()
	}
	out := make([]byte, 0, size)
	for _, id := range s.order {
		e := s.entries[id]
		out = append(out, '[')
		out = append(out, e.name...)
		out = append(out, ']', '\n')
		out = append(out, e.buf...)
	}
	return out
}

// Flush rewrites the backing stream from the in-memory index. The full
// serialized text is written at offset 0 and the backing is truncated to
// the emitted length, so shrinkage from deletions never leaves trailing
// garbage. The backing's stream position is restored afterward. Flush does
// nothing when no mutation happened since the last flush (or since open),
// and it never closes the backing.
//
// There is no partial-failure recovery: an I/O error partway through
// leaves the backing in an undefined state, and the error is returned
// verbatim without retry.
func (s *Sheaf) Flush() error {
	if s.closed {
		return ErrSheafClosed
	}
	if s.revision == s.flushedRev {
		return nil
	}

	prev, err := s.backing.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := s.backing.Seek(0, io.SeekStart); err != nil {
		return err
	}

	text := s.serialize()
	if _, err := s.backing.Write(text); err != nil {
		return err
	}
	if err := s.backing.Truncate(int64(len(text))); err != nil {
		return err
	}
	if _, err := s.backing.Seek(prev, io.SeekStart); err != nil {
		return err
	}

	s.flushedRev = s.revision
	return nil
}
