package bible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFirstReference(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Reference
		wantRaw string
		ok      bool
	}{
		{
			name:    "reference inside a question",
			text:    "Explain John 3:16",
			want:    Reference{Book: "John", Chapter: 3, Verse: 16},
			wantRaw: "John 3:16",
			ok:      true,
		},
		{
			name:    "numeric book prefix",
			text:    "please read 1 John 5:7 closely",
			want:    Reference{Book: "1 John", Chapter: 5, Verse: 7},
			wantRaw: "1 John 5:7",
			ok:      true,
		},
		{
			name:    "range suffix preserved in raw",
			text:    "what does John 3:16-18 teach?",
			want:    Reference{Book: "John", Chapter: 3, Verse: 16},
			wantRaw: "John 3:16-18",
			ok:      true,
		},
		{
			name:    "cross chapter range suffix",
			text:    "summarize Gen 1:30-2:3",
			want:    Reference{Book: "Gen", Chapter: 1, Verse: 30},
			wantRaw: "Gen 1:30-2:3",
			ok:      true,
		},
		{
			name:    "first match wins",
			text:    "compare John 3:16 with Romans 5:8",
			want:    Reference{Book: "John", Chapter: 3, Verse: 16},
			wantRaw: "John 3:16",
			ok:      true,
		},
		{
			name: "no chapter and verse",
			text: "Who wrote Genesis?",
			ok:   false,
		},
		{
			name: "empty input",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ExtractFirstReference(tt.text)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.want.Book, ref.Book)
			assert.Equal(t, tt.want.Chapter, ref.Chapter)
			assert.Equal(t, tt.want.Verse, ref.Verse)
			assert.Equal(t, tt.wantRaw, ref.Raw)
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Range
		ok   bool
	}{
		{
			name: "same chapter range",
			text: "John 3:16-18",
			want: Range{Book: "John", ChapterStart: 3, VerseStart: 16, ChapterEnd: 3, VerseEnd: 18},
			ok:   true,
		},
		{
			name: "single verse span",
			text: "John 3:16-16",
			want: Range{Book: "John", ChapterStart: 3, VerseStart: 16, ChapterEnd: 3, VerseEnd: 16},
			ok:   true,
		},
		{
			name: "cross chapter range",
			text: "Gen 1:30-2:3",
			want: Range{Book: "Gen", ChapterStart: 1, VerseStart: 30, ChapterEnd: 2, VerseEnd: 3},
			ok:   true,
		},
		{
			name: "multi-word book",
			text: "Song of Solomon 2:1-5",
			want: Range{Book: "Song of Solomon", ChapterStart: 2, VerseStart: 1, ChapterEnd: 2, VerseEnd: 5},
			ok:   true,
		},
		{
			name: "numeric prefix cross chapter",
			text: "1 John 1:5-2:2",
			want: Range{Book: "1 John", ChapterStart: 1, VerseStart: 5, ChapterEnd: 2, VerseEnd: 2},
			ok:   true,
		},
		{name: "inverted verses", text: "John 3:18-16", ok: false},
		{name: "inverted chapters", text: "John 4:1-3:2", ok: false},
		{name: "single verse is not a range", text: "John 3:16", ok: false},
		{name: "bare chapter", text: "John 3", ok: false},
		{name: "bare book", text: "Genesis", ok: false},
		{name: "empty", text: "", ok: false},
		{name: "not a reference", text: "who wrote this", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, ok := ParseRange(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, rng)
			}
		})
	}
}

func TestRangeSameChapter(t *testing.T) {
	same, ok := ParseRange("John 3:16-18")
	require.True(t, ok)
	assert.True(t, same.SameChapter())

	cross, ok := ParseRange("Gen 1:30-2:3")
	require.True(t, ok)
	assert.False(t, cross.SameChapter())
}
