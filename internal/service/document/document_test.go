package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentenceTexts(p Paragraph) []string {
	out := make([]string, len(p.Sentences))
	for i, s := range p.Sentences {
		out[i] = s.Text
	}
	return out
}

func TestParseSingleParagraph(t *testing.T) {
	doc := Parse("Hi there. How are you?")

	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, []string{"Hi there.", "How are you?"}, sentenceTexts(doc.Paragraphs[0]))
	assert.Equal(t, 5, doc.WordCount())
	assert.Equal(t, 22, doc.CharCount())
	assert.Equal(t, "Hi there. How are you?", doc.Text())
}

func TestParseParagraphs(t *testing.T) {
	text := "First one! Still first\nsoft wrapped.\n\n  \n\nSecond paragraph"
	doc := Parse(text)

	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, []string{"First one!", "Still first soft wrapped."}, sentenceTexts(doc.Paragraphs[0]))
	assert.Equal(t, []string{"Second paragraph"}, sentenceTexts(doc.Paragraphs[1]))
	assert.Equal(t, "First one! Still first soft wrapped.\n\nSecond paragraph", doc.Text())
}

func TestParseWordIndicesAreSequential(t *testing.T) {
	doc := Parse("One  two. Three\r\n\r\nfour five? six")

	words := doc.Words()
	require.Len(t, words, doc.WordCount())
	for i, w := range words {
		assert.Equal(t, i, w.Index)
		assert.NotEmpty(t, w.Text)
	}
	assert.Equal(t, "six", words[5].Text)
}

func TestParseEmpty(t *testing.T) {
	doc := Parse(" \n\n\t")
	assert.Empty(t, doc.Paragraphs)
	assert.Zero(t, doc.WordCount())
	assert.Empty(t, doc.Text())
}

func TestWordLenCountsRunes(t *testing.T) {
	assert.Equal(t, 5, Word{Text: "çafés"}.Len())
}
