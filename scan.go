package sheaf

import (
	"bytes"
	"fmt"
	"strings"
)

// tokenKind classifies one logical line of source text.
type tokenKind int

const (
	// tokenHeader is a section header line.
	tokenHeader tokenKind = iota

	// tokenContent is any other line, attributed verbatim to the section
	// whose header most recently appeared.
	tokenContent
)

// token is one logical line produced by the splitter.
type token struct {
	kind tokenKind
	name string // header name, set only for tokenHeader
	line []byte // raw line including its terminator
	num  int    // 1-based line number in the source
}

// lineScanner walks raw text one terminator-retained line at a time and
// classifies each line as header or content.
type lineScanner struct {
	rest []byte
	num  int
}

func newLineScanner(text []byte) *lineScanner {
	return &lineScanner{rest: text}
}

// next returns the following logical line. ok is false at end of input.
func (sc *lineScanner) next() (tok token, ok bool) {
	if len(sc.rest) == 0 {
		return token{}, false
	}
	line := sc.rest
	if i := bytes.IndexByte(sc.rest, '\n'); i >= 0 {
		line = sc.rest[:i+1]
		sc.rest = sc.rest[i+1:]
	} else {
		sc.rest = nil
	}
	sc.num++

	if name, isHeader := headerName(line); isHeader {
		return token{kind: tokenHeader, name: name, line: line, num: sc.num}, true
	}
	return token{kind: tokenContent, line: line, num: sc.num}, true
}

// headerName reports whether line is a section header and extracts its name.
// A header starts with '[' at the first byte and, once the terminator and any
// trailing whitespace are stripped, ends with ']'. The name is everything
// strictly between the brackets: internal whitespace is preserved, and an
// empty name, or one containing ']' or '\r', does not form a header. The
// accepted names are exactly the ones validateName allows, so every parsed
// section can also be recreated through the API.
func headerName(line []byte) (string, bool) {
	if len(line) == 0 || line[0] != '[' {
		return "", false
	}
	trimmed := bytes.TrimRight(line, " \t\r\n")
	if len(trimmed) < 3 || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	name := trimmed[1 : len(trimmed)-1]
	if bytes.ContainsAny(name, "]\r") {
		return "", false
	}
	return string(name), true
}

// parseText builds the section index from raw source text: one entry per
// header in first-seen order, every content line appended to the entry
// whose header is open. Blank lines before the first header are decorative
// and skipped; any other line before the first header is malformed. The
// container stays clean, so a flush straight after parsing rewrites nothing.
func (s *Sheaf) parseText(text []byte) error {
	sc := newLineScanner(text)
	var open *entry
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		switch tok.kind {
		case tokenHeader:
			if _, exists := s.byName[tok.name]; exists {
				return fmt.Errorf("line %d: duplicate section %q: %w", tok.num, tok.name, ErrDuplicateSection)
			}
			open = s.addEntry(tok.name)
		case tokenContent:
			if open == nil {
				if len(bytes.TrimSpace(tok.line)) == 0 {
					continue
				}
				return fmt.Errorf("line %d: content before first section header: %w", tok.num, ErrMalformed)
			}
			open.buf = append(open.buf, tok.line...)
		}
	}
	return nil
}

// validateName checks that a name can be emitted as a header line and parsed
// back to the same name.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty section name: %w", ErrInvalidName)
	}
	if strings.ContainsAny(name, "]\n\r") {
		return fmt.Errorf("section name %q: %w", name, ErrInvalidName)
	}
	return nil
}
