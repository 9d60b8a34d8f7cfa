package sheaf

import (
	"bytes"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// SearchResult contains information about a search match.
type SearchResult struct {
	ByteStart int64  // Start position in bytes
	ByteEnd   int64  // End position in bytes (exclusive)
	Match     string // The matched text
}

// SearchOptions configures string search behavior.
type SearchOptions struct {
	CaseSensitive bool // If false, search is case-insensitive
	WholeWord     bool // If true, only match whole words
	Backward      bool // If true, search backward from the view position
}

// RegexOptions configures regex search behavior.
type RegexOptions struct {
	CaseInsensitive bool // If true, regex is case-insensitive
	Backward        bool // If true, search backward from the view position
}

// FindString searches the section for needle starting from the view's
// position (backward searches cover the content before it). Returns the
// first match found, or nil if no match. The view is not moved.
func (v *Section) FindString(needle string, opts SearchOptions) (*SearchResult, error) {
	e, err := v.entry()
	if err != nil {
		return nil, err
	}
	if len(needle) == 0 {
		return nil, nil
	}
	return findStringIn(e.buf, v.pos, needle, opts), nil
}

// FindStringAll finds all occurrences of needle in the section's content.
// Matches come back in content order, or reverse order if Backward.
func (v *Section) FindStringAll(needle string, opts SearchOptions) ([]SearchResult, error) {
	e, err := v.entry()
	if err != nil {
		return nil, err
	}
	if len(needle) == 0 {
		return nil, nil
	}
	return findStringAllIn(e.buf, needle, opts), nil
}

// CountString counts occurrences of needle in the section's content.
func (v *Section) CountString(needle string, opts SearchOptions) (int, error) {
	matches, err := v.FindStringAll(needle, opts)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// FindRegex searches the section for a regex pattern starting from the
// view's position. Returns the first match found, or nil if no match.
// The view is not moved.
func (v *Section) FindRegex(pattern string, opts RegexOptions) (*SearchResult, error) {
	e, err := v.entry()
	if err != nil {
		return nil, err
	}
	if len(pattern) == 0 {
		return nil, nil
	}
	re, err := compileRegex(pattern, opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}
	return findRegexIn(e.buf, v.pos, re, opts), nil
}

// FindRegexAll finds all regex matches in the section's content.
func (v *Section) FindRegexAll(pattern string, opts RegexOptions) ([]SearchResult, error) {
	e, err := v.entry()
	if err != nil {
		return nil, err
	}
	if len(pattern) == 0 {
		return nil, nil
	}
	re, err := compileRegex(pattern, opts.CaseInsensitive)
	if err != nil {
		return nil, err
	}
	return findRegexAllIn(e.buf, re, opts), nil
}

// ReplaceStringAll replaces every occurrence of needle in the section with
// replacement, splicing the shared buffer. Returns the number of
// replacements made. Positions of other views over the section are left
// numerically unchanged, as with any shared-buffer mutation.
func (v *Section) ReplaceStringAll(needle, replacement string, opts SearchOptions) (int, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	if len(needle) == 0 {
		return 0, nil
	}

	matches := findStringAllIn(e.buf, needle, opts)

	// Splice from end to start so earlier match positions stay valid
	sortByStartDescending(matches)

	repl := []byte(replacement)
	for _, m := range matches {
		e.splice(m.ByteStart, m.ByteEnd, repl)
	}
	return len(matches), nil
}

// ReplaceRegexAll replaces every regex match in the section with
// replacement, expanding $1-style capture group references per match.
// Returns the number of replacements made.
func (v *Section) ReplaceRegexAll(pattern, replacement string, opts RegexOptions) (int, error) {
	e, err := v.entry()
	if err != nil {
		return 0, err
	}
	if len(pattern) == 0 {
		return 0, nil
	}
	re, err := compileRegex(pattern, opts.CaseInsensitive)
	if err != nil {
		return 0, err
	}

	// Splice from end to start so earlier match positions stay valid.
	// Expansion runs against the original buffer and the real submatch
	// indices, so group references resolve exactly as they matched.
	matches := re.FindAllSubmatchIndex(e.buf, -1)
	tmpl := []byte(replacement)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		expanded := re.Expand(nil, tmpl, e.buf, m)
		e.splice(int64(m[0]), int64(m[1]), expanded)
	}
	return len(matches), nil
}

// Internal implementation helpers

// foldedPattern returns the fold-aware matcher for needle, or nil when the
// search is case-sensitive and plain byte comparison applies. Folding must
// happen while matching against the stored bytes: lowering a copy of the
// haystack can change rune byte lengths ('Ⱥ' is two bytes, its lowercase
// 'ⱥ' is three), which would misalign every offset after such a rune.
func foldedPattern(needle string, opts SearchOptions) *regexp.Regexp {
	if opts.CaseSensitive {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(needle))
}

// nextLiteral locates the first occurrence of needle at or after offset.
// folded is nil for byte-exact search. Offsets always refer to data itself;
// a folded match's byte length can differ from the needle's, so the end
// comes from the matcher, not from len(needle).
func nextLiteral(data []byte, offset int64, needle []byte, folded *regexp.Regexp) (start, end int64, ok bool) {
	if offset >= int64(len(data)) {
		return 0, 0, false
	}
	if folded == nil {
		idx := bytes.Index(data[offset:], needle)
		if idx < 0 {
			return 0, 0, false
		}
		start = offset + int64(idx)
		return start, start + int64(len(needle)), true
	}
	loc := folded.FindIndex(data[offset:])
	if loc == nil {
		return 0, 0, false
	}
	return offset + int64(loc[0]), offset + int64(loc[1]), true
}

func findStringIn(data []byte, startPos int64, needle string, opts SearchOptions) *SearchResult {
	nb := []byte(needle)
	folded := foldedPattern(needle, opts)

	if opts.Backward {
		// Last match fully contained before startPos. The word-boundary
		// check still runs against the full buffer.
		limit := startPos
		if limit > int64(len(data)) {
			limit = int64(len(data))
		}
		var res *SearchResult
		for offset := int64(0); ; {
			start, end, ok := nextLiteral(data[:limit], offset, nb, folded)
			if !ok {
				break
			}
			if !opts.WholeWord || isWholeWord(data, start, end-start) {
				res = &SearchResult{ByteStart: start, ByteEnd: end, Match: string(data[start:end])}
			}
			offset = start + 1
		}
		return res
	}

	for offset := startPos; ; {
		start, end, ok := nextLiteral(data, offset, nb, folded)
		if !ok {
			return nil
		}
		if opts.WholeWord && !isWholeWord(data, start, end-start) {
			offset = start + 1
			continue
		}
		return &SearchResult{ByteStart: start, ByteEnd: end, Match: string(data[start:end])}
	}
}

func findStringAllIn(data []byte, needle string, opts SearchOptions) []SearchResult {
	nb := []byte(needle)
	folded := foldedPattern(needle, opts)

	var results []SearchResult
	for offset := int64(0); ; {
		start, end, ok := nextLiteral(data, offset, nb, folded)
		if !ok {
			break
		}
		if opts.WholeWord && !isWholeWord(data, start, end-start) {
			offset = start + 1
			continue
		}
		results = append(results, SearchResult{ByteStart: start, ByteEnd: end, Match: string(data[start:end])})
		offset = end
	}

	if opts.Backward {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}

	return results
}

func findRegexIn(data []byte, startPos int64, re *regexp.Regexp, opts RegexOptions) *SearchResult {
	if opts.Backward {
		// Find all matches before startPos, return the last one
		end := startPos
		if end > int64(len(data)) {
			end = int64(len(data))
		}
		matches := re.FindAllIndex(data[:end], -1)
		if len(matches) == 0 {
			return nil
		}

		last := matches[len(matches)-1]
		return &SearchResult{
			ByteStart: int64(last[0]),
			ByteEnd:   int64(last[1]),
			Match:     string(data[last[0]:last[1]]),
		}
	}

	if startPos > int64(len(data)) {
		return nil
	}
	searchData := data[startPos:]
	loc := re.FindIndex(searchData)
	if loc == nil {
		return nil
	}

	return &SearchResult{
		ByteStart: startPos + int64(loc[0]),
		ByteEnd:   startPos + int64(loc[1]),
		Match:     string(searchData[loc[0]:loc[1]]),
	}
}

func findRegexAllIn(data []byte, re *regexp.Regexp, opts RegexOptions) []SearchResult {
	matches := re.FindAllIndex(data, -1)
	if len(matches) == 0 {
		return nil
	}

	results := make([]SearchResult, len(matches))
	for i, loc := range matches {
		results[i] = SearchResult{
			ByteStart: int64(loc[0]),
			ByteEnd:   int64(loc[1]),
			Match:     string(data[loc[0]:loc[1]]),
		}
	}

	if opts.Backward {
		// Reverse for backward iteration
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}

	return results
}

// sortByStartDescending orders matches so that splicing never shifts a
// yet-unprocessed match. Matches never overlap; insertion sort is enough
// for the small result sets involved.
func sortByStartDescending(matches []SearchResult) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].ByteStart > matches[j-1].ByteStart; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

// compileRegex compiles a regex pattern with optional case insensitivity.
func compileRegex(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// isWholeWord reports whether the match at [pos, pos+length) is bounded by
// non-word characters (or content edges) on both sides.
func isWholeWord(data []byte, pos, length int64) bool {
	// Check character before match
	if pos > 0 {
		r, _ := utf8.DecodeLastRune(data[:pos])
		if isWordChar(r) {
			return false
		}
	}

	// Check character after match
	if pos+length < int64(len(data)) {
		r, _ := utf8.DecodeRune(data[pos+length:])
		if isWordChar(r) {
			return false
		}
	}

	return true
}

// isWordChar returns true if r is a word character (letter, digit, or underscore).
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
