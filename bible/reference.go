package bible

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Reference is a single-verse scripture pointer, e.g. "John 3:16".
type Reference struct {
	Book    string
	Chapter int
	Verse   int

	// Raw is the matched text as it appeared in the source, including any
	// range suffix ("John 3:16-18"). Range expansion works off Raw.
	Raw string
}

// String returns the canonical "Book Chapter:Verse" form.
func (r Reference) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Range is a validated verse range. For same-chapter ranges ChapterStart and
// ChapterEnd are equal.
type Range struct {
	Book         string
	ChapterStart int
	VerseStart   int
	ChapterEnd   int
	VerseEnd     int
}

// SameChapter reports whether the range stays within one chapter.
func (r Range) SameChapter() bool {
	return r.ChapterStart == r.ChapterEnd
}

// refPattern locates the first literal reference in free text: an optional
// numeric book prefix (1-3), a book name, chapter:verse, and an optional
// range suffix ("-V2" or "-C2:V2").
var refPattern = regexp.MustCompile(
	`((?:[1-3]\s*)?[A-Za-z][A-Za-z.]*)\s+(\d{1,3}):(\d{1,3})((?:\s*-\s*\d{1,3}(?::\d{1,3})?)?)`)

// ExtractFirstReference scans free text for a literal scripture reference.
// Only the first match is considered. The returned Reference carries the
// start verse; any range suffix is preserved in Raw for ParseRange.
func ExtractFirstReference(text string) (Reference, bool) {
	m := refPattern.FindStringSubmatch(text)
	if m == nil {
		return Reference{}, false
	}

	chapter, err := strconv.Atoi(m[2])
	if err != nil {
		return Reference{}, false
	}
	verse, err := strconv.Atoi(m[3])
	if err != nil {
		return Reference{}, false
	}

	return Reference{
		Book:    strings.TrimSpace(m[1]),
		Chapter: chapter,
		Verse:   verse,
		Raw:     strings.TrimSpace(m[0]),
	}, true
}

// rangeSpec is the participle grammar for reference strings. One grammar
// covers "Book C:V", "Book C:V1-V2" and "Book C1:V1-C2:V2"; the ambiguity
// between the last two is resolved in post-processing.
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeSpec struct {
	Book       string `@Book`
	Chapter    int    `@Number`
	Verse      *int   `( ":" @Number )?`
	ChapterEnd *int   `( "-" @Number`
	VerseEnd   *int   `  ( ":" @Number )? )?`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Book names: optional 1-3 prefix, words, optional "of" connective,
	// optional trailing period. Examples: John, 1 John, Gen., Song of Solomon.
	{Name: "Book", Pattern: `(?:[1-3]\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rangeParser = participle.MustBuild[rangeSpec](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRange parses a reference string as a verse range. It returns false for
// anything that is not a valid range: single verses, bare book or chapter
// references, unparseable input, and inverted ranges. Callers treat such
// input as one opaque reference string.
func ParseRange(text string) (Range, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Range{}, false
	}

	spec, err := rangeParser.ParseString("", text)
	if err != nil {
		return Range{}, false
	}
	if spec.Verse == nil || spec.ChapterEnd == nil {
		// Bare book/chapter or a single verse; not a range.
		return Range{}, false
	}

	rng := Range{
		Book:         strings.TrimSpace(spec.Book),
		ChapterStart: spec.Chapter,
		VerseStart:   *spec.Verse,
	}

	if spec.VerseEnd == nil {
		// "Book C:V1-V2": the number after the dash is the end verse.
		rng.ChapterEnd = spec.Chapter
		rng.VerseEnd = *spec.ChapterEnd
	} else {
		// "Book C1:V1-C2:V2"
		rng.ChapterEnd = *spec.ChapterEnd
		rng.VerseEnd = *spec.VerseEnd
	}

	if !validRange(rng) {
		return Range{}, false
	}
	return rng, true
}

func validRange(r Range) bool {
	if r.ChapterStart <= 0 || r.VerseStart <= 0 || r.VerseEnd <= 0 {
		return false
	}
	if r.ChapterStart == r.ChapterEnd {
		return r.VerseStart <= r.VerseEnd
	}
	return r.ChapterStart < r.ChapterEnd
}
