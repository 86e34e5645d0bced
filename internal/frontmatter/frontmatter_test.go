package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWithHeader(t *testing.T) {
	doc := []byte("---\ntitle: Hello\ndate: 2019-03-02 10:00:00 +0700\n---\nBody text\n")

	fm, body, had, style, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: Hello\ndate: 2019-03-02 10:00:00 +0700\n", string(fm))
	assert.Equal(t, "Body text\n", string(body))
	assert.Equal(t, "\n", style.Newline)
	assert.True(t, style.HasTrailingNewline)
}

func TestSplitNoHeader(t *testing.T) {
	doc := []byte("Just a body\n")
	fm, body, had, _, err := Split(doc)
	require.NoError(t, err)
	assert.False(t, had)
	assert.Nil(t, fm)
	assert.Equal(t, doc, body)
}

func TestSplitMissingClosingDelimiter(t *testing.T) {
	doc := []byte("---\ntitle: Broken\nno closing here\n")
	_, _, _, _, err := Split(doc)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplitCRLF(t *testing.T) {
	doc := []byte("---\r\ntitle: Win\r\n---\r\nBody\r\n")
	fm, body, had, style, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "\r\n", style.Newline)
	assert.Equal(t, "title: Win\r\n", string(fm))
	assert.Equal(t, "Body\r\n", string(body))
}

func TestDecodeHeader(t *testing.T) {
	fm := []byte("layout: post\ntitle: \"SwiftUI diffing\"\ndate: 2020-05-17 21:52:00 +0700\ntags:\n  - swift\n  - swiftui\n")

	h, err := DecodeHeader(fm)
	require.NoError(t, err)
	assert.Equal(t, "post", h.Layout)
	assert.Equal(t, "SwiftUI diffing", h.Title)
	assert.Equal(t, []string{"swift", "swiftui"}, []string(h.Tags))

	want := time.Date(2020, 5, 17, 21, 52, 0, 0, time.FixedZone("", 7*3600))
	assert.True(t, h.Date.Equal(want), "date mismatch: got %v", h.Date.Time)
}

func TestDecodeHeaderScalarTag(t *testing.T) {
	h, err := DecodeHeader([]byte("title: X\ntags: swift\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"swift"}, []string(h.Tags))
}

func TestDecodeHeaderDateOnly(t *testing.T) {
	h, err := DecodeHeader([]byte("title: X\ndate: 2018-11-20\n"))
	require.NoError(t, err)
	assert.Equal(t, 2018, h.Date.Year())
	assert.Equal(t, time.November, h.Date.Month())
}

func TestDecodeHeaderBadDate(t *testing.T) {
	_, err := DecodeHeader([]byte("date: not-a-date\n"))
	assert.Error(t, err)
}

func TestJoinInvertsSplit(t *testing.T) {
	fm := []byte("title: Hello\ndate: 2019-03-02\n")
	body := []byte("Body text\n")

	doc := Join(fm, body, Style{Newline: "\n"})
	assert.Equal(t, "---\ntitle: Hello\ndate: 2019-03-02\n---\nBody text\n", string(doc))

	gotFM, gotBody, had, _, err := Split(doc)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, fm, gotFM)
	assert.Equal(t, body, gotBody)
}

func TestJoinAddsMissingHeaderNewline(t *testing.T) {
	doc := Join([]byte("title: Hello"), []byte("Body\n"), Style{})
	assert.Equal(t, "---\ntitle: Hello\n---\nBody\n", string(doc))
}
