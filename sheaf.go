package sheaf

import (
	"fmt"
	"io"
	"strings"
)

// Sheaf is a multi-section text container: an ordered set of named sections
// parsed once from a backing stream, mutated in memory, and written back in
// full by Flush.
//
// A Sheaf and its views are not safe for concurrent use; callers that need
// concurrency must synchronize externally.
type Sheaf struct {
	// Backing stream
	backing     Backing
	ownsBacking bool
	path        string // backing file path, "" for wrapped streams

	// Section index
	entries  map[entryID]*entry // the arena; deletion removes the key
	byName   map[string]entryID // live names only
	order    []entryID          // ascending rank
	nextID   entryID
	nextRank uint64

	// Dirty tracking
	revision   uint64
	flushedRev uint64

	closed bool
}

// Wrap builds a container around a caller-owned backing stream, parsing its
// current content. The stream is borrowed: Close flushes to it but never
// closes it. The stream's position is restored after the parse.
func Wrap(b Backing) (*Sheaf, error) {
	s := newSheaf(b, false, "")
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open opens or creates the file at path according to mode and builds a
// container that owns it: Close flushes and then closes the file.
func Open(path string, mode OpenMode) (*Sheaf, error) {
	f, err := openBackingFile(path, mode)
	if err != nil {
		return nil, err
	}
	s := newSheaf(f, true, path)
	if err := s.load(); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Update opens path read-write (creating it if missing), passes the
// container to fn, and flushes and closes on every exit path. An error
// from fn wins over a close error.
func Update(path string, fn func(*Sheaf) error) error {
	s, err := Open(path, OpenModeReadWrite)
	if err != nil {
		return err
	}
	err = fn(s)
	cerr := s.Close()
	if err != nil {
		return err
	}
	return cerr
}

// View opens path read-only and passes the container to fn, closing it on
// every exit path. Closing an unmutated container writes nothing, so a fn
// that only reads never touches the file; if fn mutates, the close-time
// flush fails against the read-only backing and that error is returned.
func View(path string, fn func(*Sheaf) error) error {
	s, err := Open(path, OpenModeRead)
	if err != nil {
		return err
	}
	err = fn(s)
	cerr := s.Close()
	if err != nil {
		return err
	}
	return cerr
}

func newSheaf(b Backing, owns bool, path string) *Sheaf {
	return &Sheaf{
		backing:     b,
		ownsBacking: owns,
		path:        path,
		entries:     make(map[entryID]*entry),
		byName:      make(map[string]entryID),
	}
}

// load reads the whole backing from offset 0 and parses it, restoring the
// backing's stream position afterward.
func (s *Sheaf) load() error {
	prev, err := s.backing.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := s.backing.Seek(0, io.SeekStart); err != nil {
		return err
	}
	text, err := io.ReadAll(s.backing)
	if err != nil {
		return err
	}
	if _, err := s.backing.Seek(prev, io.SeekStart); err != nil {
		return err
	}
	return s.parseText(text)
}

// addEntry creates, registers, and orders a new entry. The caller has
// already checked the name for uniqueness and validity.
func (s *Sheaf) addEntry(name string) *entry {
	s.nextID++
	e := newEntry(s.nextID, s, name, s.nextRank)
	s.nextRank++
	s.entries[e.id] = e
	s.byName[name] = e.id
	s.order = append(s.order, e.id)
	return e
}

// removeEntry unregisters e. Views still bound to its ID turn stale on
// their next operation. Ranks of surviving entries are not renumbered.
func (s *Sheaf) removeEntry(e *entry) {
	delete(s.entries, e.id)
	delete(s.byName, e.name)
	for i, id := range s.order {
		if id == e.id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// markDirty records a mutation since the last flush.
func (s *Sheaf) markDirty() {
	s.revision++
}

// Get returns a fresh view, positioned at 0, over an existing section.
// Repeated lookups return distinct views sharing the same content.
func (s *Sheaf) Get(name string) (*Section, error) {
	if s.closed {
		return nil, ErrSheafClosed
	}
	id, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("section %q: %w", name, ErrSectionNotFound)
	}
	return newSection(s, id), nil
}

// Section returns a fresh view over the named section, creating an empty
// section with the next order rank when the name is new.
func (s *Sheaf) Section(name string) (*Section, error) {
	if s.closed {
		return nil, ErrSheafClosed
	}
	if id, ok := s.byName[name]; ok {
		return newSection(s, id), nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	e := s.addEntry(name)
	s.markDirty()
	return newSection(s, e.id), nil
}

// Set reads r fully and installs its content as the named section. An
// existing section of that name is deleted and recreated, which moves it
// to the end of the order and stales outstanding views; callers that need
// rank-preserving replacement should use Section plus Truncate instead.
func (s *Sheaf) Set(name string, r io.Reader) error {
	if s.closed {
		return ErrSheafClosed
	}
	if err := validateName(name); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if id, ok := s.byName[name]; ok {
		s.removeEntry(s.entries[id])
	}
	e := s.addEntry(name)
	e.buf = data
	s.markDirty()
	return nil
}

// SetString installs text as the named section's content. See Set.
func (s *Sheaf) SetString(name, text string) error {
	return s.Set(name, strings.NewReader(text))
}

// Delete removes the named section. Outstanding views bound to it fail
// their subsequent operations with ErrStaleView.
func (s *Sheaf) Delete(name string) error {
	if s.closed {
		return ErrSheafClosed
	}
	id, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("section %q: %w", name, ErrSectionNotFound)
	}
	s.removeEntry(s.entries[id])
	s.markDirty()
	return nil
}

// Rename changes a section's name, preserving its identity, content, order
// rank, and the validity of outstanding views.
func (s *Sheaf) Rename(oldName, newName string) error {
	if s.closed {
		return ErrSheafClosed
	}
	id, ok := s.byName[oldName]
	if !ok {
		return fmt.Errorf("section %q: %w", oldName, ErrSectionNotFound)
	}
	if newName == oldName {
		return nil
	}
	if _, exists := s.byName[newName]; exists {
		return fmt.Errorf("section %q: %w", newName, ErrDuplicateSection)
	}
	if err := validateName(newName); err != nil {
		return err
	}
	e := s.entries[id]
	delete(s.byName, oldName)
	s.byName[newName] = id
	e.name = newName
	s.markDirty()
	return nil
}

// Has reports whether a live section has the given name.
func (s *Sheaf) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of live sections.
func (s *Sheaf) Len() int {
	return len(s.order)
}

// Names returns the section names in container order: parse order for
// sections from the source text, creation order for ones added since.
func (s *Sheaf) Names() []string {
	names := make([]string, 0, len(s.order))
	for _, id := range s.order {
		names = append(names, s.entries[id].name)
	}
	return names
}

// Dirty reports whether the container has unflushed mutations.
func (s *Sheaf) Dirty() bool {
	return s.revision != s.flushedRev
}

// Path returns the backing file's path when the container was opened by
// path, "" when it wraps a caller-supplied stream.
func (s *Sheaf) Path() string {
	return s.path
}

// Close flushes and, when the container owns its backing (opened by path
// rather than wrapped), closes it. Close is idempotent; after the first
// call, container and view operations fail with ErrSheafClosed.
func (s *Sheaf) Close() error {
	if s.closed {
		return nil
	}
	err := s.Flush()
	s.closed = true
	if s.ownsBacking {
		if c, ok := s.backing.(io.Closer); ok {
			if cerr := c.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}
