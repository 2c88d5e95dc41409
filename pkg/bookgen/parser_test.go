package bookgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedJSON(t *testing.T) {
	raw := "Sure! Here is your book:\n```json\n{\"title\": \"Moon Gardens\", \"chapters\": [{\"title\": \"Seeds\", \"content\": \"It began at night.\"}, {\"title\": \" \", \"content\": \"\"}]}\n```\nEnjoy."

	d, err := NewParser().Parse(raw, "Untitled")

	require.NoError(t, err)
	assert.Equal(t, "Moon Gardens", d.Title)
	require.Len(t, d.Chapters, 1)
	assert.Equal(t, "Seeds", d.Chapters[0].Title)
	assert.Equal(t, "It began at night.", d.Chapters[0].Content)
}

func TestParseInlineJSONUsesFallbackTitle(t *testing.T) {
	raw := `Output: {"chapters":[{"title":"One","content":"a"},{"title":"Two","content":"b"}]} done`

	d, err := NewParser().Parse(raw, "Fallback")

	require.NoError(t, err)
	assert.Equal(t, "Fallback", d.Title)
	assert.Len(t, d.Chapters, 2)
}

func TestParseMarkdownHeadings(t *testing.T) {
	raw := "# The Lighthouse\n\nA short preface.\n\n## Arrival\nThe boat docked.\n\n### A detail\nstill arrival\n## Storm\nWind."

	d, err := NewParser().Parse(raw, "Untitled")

	require.NoError(t, err)
	assert.Equal(t, "The Lighthouse", d.Title)
	require.Len(t, d.Chapters, 3)
	assert.Equal(t, Chapter{Title: "Introduction", Content: "A short preface."}, d.Chapters[0])
	assert.Equal(t, "Arrival", d.Chapters[1].Title)
	assert.Contains(t, d.Chapters[1].Content, "still arrival")
	assert.Equal(t, Chapter{Title: "Storm", Content: "Wind."}, d.Chapters[2])
}

func TestParseChapterMarkers(t *testing.T) {
	raw := "**Chapter 1: Dawn**\nLight.\nChapter 2\nNoon.\nCHAPTER III - Dusk\nShadow."

	d, err := NewParser().Parse(raw, "Day")

	require.NoError(t, err)
	assert.Equal(t, "Day", d.Title)
	require.Len(t, d.Chapters, 3)
	assert.Equal(t, "Dawn", d.Chapters[0].Title)
	assert.Equal(t, "Light.", d.Chapters[0].Content)
	assert.Equal(t, "Chapter 2", d.Chapters[1].Title)
	assert.Equal(t, "Dusk", d.Chapters[2].Title)
}

func TestParsePlainText(t *testing.T) {
	d, err := NewParser().Parse("Once upon a time.", "Fable")

	require.NoError(t, err)
	assert.Equal(t, "Fable", d.Title)
	require.Len(t, d.Chapters, 1)
	assert.Equal(t, "Once upon a time.", d.Chapters[0].Content)
}

func TestParseEmpty(t *testing.T) {
	_, err := NewParser().Parse("  \n ", "x")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}
