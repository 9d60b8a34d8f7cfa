package sheaf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	s, err := Wrap(NewMemFileString("[a]\nx,y\n1,2\n[b]\np,q\n9,8\n"))
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, []string{"a", "b"}, s.Names())

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "x,y\n1,2\n", text)

	sec, err = s.Get("b")
	require.NoError(t, err)
	text, err = sec.Text()
	require.NoError(t, err)
	require.Equal(t, "p,q\n9,8\n", text)
}

func TestParseEmptyInput(t *testing.T) {
	s, err := Wrap(NewMemFileString(""))
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Names())
	require.False(t, s.Dirty())
}

func TestParseEmptySections(t *testing.T) {
	s, err := Wrap(NewMemFileString("[a]\n[b]\n[c]\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, s.Names())

	for _, name := range s.Names() {
		sec, err := s.Get(name)
		require.NoError(t, err)
		n, err := sec.Len()
		require.NoError(t, err)
		require.Zero(t, n, "section %q", name)
	}
}

func TestParseBlankLinesBeforeFirstHeader(t *testing.T) {
	s, err := Wrap(NewMemFileString("\n \t\n[a]\nx\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, s.Names())

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "x\n", text)
}

func TestParseContentBeforeFirstHeader(t *testing.T) {
	_, err := Wrap(NewMemFileString("x,y\n[a]\n1\n"))
	require.ErrorIs(t, err, ErrMalformed)
	require.Contains(t, err.Error(), "line 1")
}

func TestParseDuplicateSection(t *testing.T) {
	_, err := Wrap(NewMemFileString("[a]\nx\n[b]\ny\n[a]\nz\n"))
	require.ErrorIs(t, err, ErrDuplicateSection)
	require.Contains(t, err.Error(), `"a"`)
	require.Contains(t, err.Error(), "line 5")
}

func TestParseBlankLinesAreContent(t *testing.T) {
	// Blank lines after a header belong to that section, including one
	// immediately before the next header.
	s, err := Wrap(NewMemFileString("[a]\nx\n\ny\n\n[b]\nz\n"))
	require.NoError(t, err)

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "x\n\ny\n\n", text)
}

func TestParseFinalLineWithoutTerminator(t *testing.T) {
	s, err := Wrap(NewMemFileString("[a]\nx\ny"))
	require.NoError(t, err)

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "x\ny", text)
}

func TestParseCRLFInput(t *testing.T) {
	// Headers parse with CRLF terminators; content bytes stay verbatim.
	s, err := Wrap(NewMemFileString("[a]\r\nx\r\n[b]\r\ny\r\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, s.Names())

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "x\r\n", text)
}

func TestHeaderSyntax(t *testing.T) {
	cases := []struct {
		line   string
		name   string
		header bool
	}{
		{"[a]\n", "a", true},
		{"[a]", "a", true},              // no terminator
		{"[a] \t\n", "a", true},         // trailing whitespace after the bracket
		{"[a]\r\n", "a", true},          // CRLF terminator
		{"[ a b ]\n", " a b ", true},    // internal whitespace is part of the name
		{"[a[b]\n", "a[b", true},        // '[' may appear inside a name
		{"[]\n", "", false},             // empty name
		{"[a]x\n", "", false},           // text after the closing bracket
		{"[a\n", "", false},             // unterminated
		{"a]\n", "", false},             // no opening bracket
		{" [a]\n", "", false},           // '[' must be the first byte
		{"[a]b]\n", "", false},          // ']' inside the name
		{"[a\rb]\n", "", false},         // '\r' inside the name
		{"plain content\n", "", false},
		{"\n", "", false},
	}

	for _, c := range cases {
		name, ok := headerName([]byte(c.line))
		require.Equal(t, c.header, ok, "line %q", c.line)
		require.Equal(t, c.name, name, "line %q", c.line)
	}
}

func TestParseCarriageReturnInNameIsContent(t *testing.T) {
	// A bracketed line with '\r' inside the name is not a header, so it is
	// ordinary content of the open section. Parse never produces a name the
	// API would refuse to create.
	s, err := Wrap(NewMemFileString("[a]\n[b\rc]\nx\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, s.Names())

	sec, err := s.Get("a")
	require.NoError(t, err)
	text, err := sec.Text()
	require.NoError(t, err)
	require.Equal(t, "[b\rc]\nx\n", text)
}

func TestValidateName(t *testing.T) {
	require.NoError(t, validateName("a"))
	require.NoError(t, validateName(" spaced out "))
	require.NoError(t, validateName("with[bracket"))

	require.ErrorIs(t, validateName(""), ErrInvalidName)
	require.ErrorIs(t, validateName("a]b"), ErrInvalidName)
	require.ErrorIs(t, validateName("a\nb"), ErrInvalidName)
	require.ErrorIs(t, validateName("a\rb"), ErrInvalidName)
}

func FuzzParseFlushReparse(f *testing.F) {
	f.Add("[a]\nx,y\n1,2\n[b]\np,q\n9,8\n")
	f.Add("[a]\n")
	f.Add("\n\n[s]\ntext\n\nmore\n")
	f.Add("[ odd name ]\nline without terminator")
	f.Add("[a] \n[b]\r\nx\n")

	f.Fuzz(func(t *testing.T, text string) {
		s, err := Wrap(NewMemFileString(text))
		if err != nil {
			// Malformed input may be rejected, never mis-parsed.
			return
		}

		// Whatever the parser accepted must serialize to text that parses
		// back to the identical model, and serialization of that model
		// must be stable.
		first := s.serialize()
		r, err := Wrap(NewMemFile(first))
		require.NoError(t, err, "serialized output failed to reparse")
		require.Equal(t, s.Names(), r.Names())
		require.Equal(t, first, r.serialize())

		for _, name := range s.Names() {
			a, err := s.Get(name)
			require.NoError(t, err)
			b, err := r.Get(name)
			require.NoError(t, err)

			at, err := a.Text()
			require.NoError(t, err)
			bt, err := b.Text()
			require.NoError(t, err)
			require.Equal(t, at, bt, "section %q", name)
		}
	})
}
