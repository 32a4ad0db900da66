// Package document разбирает исходный текст на абзацы, предложения и слова
// с глобальной нумерацией слов в порядке набора.
package document

import (
	"strings"
	"unicode/utf8"
)

// Word — непрерывный токен без пробелов и его позиция в документе.
type Word struct {
	Index int
	Text  string
}

// Len — длина слова в символах (рунах).
func (w Word) Len() int { return utf8.RuneCountInString(w.Text) }

// Sentence — слова предложения и исходная строка для подсказок rethink.
type Sentence struct {
	Text  string
	Words []Word
}

type Paragraph struct {
	Sentences []Sentence
}

// Document неизменяем после Parse.
type Document struct {
	Paragraphs []Paragraph
	wordCount  int
	charCount  int
}

// Parse делит текст на абзацы по пустым строкам, абзац — на предложения по
// завершающей пунктуации перед пробелом. Одиночные переводы строки внутри
// абзаца считаются пробелами.
func Parse(text string) *Document {
	doc := &Document{charCount: utf8.RuneCountInString(text)}
	for _, block := range splitParagraphs(text) {
		fields := strings.Fields(block)
		if len(fields) == 0 {
			continue
		}
		var p Paragraph
		var cur []Word
		flush := func() {
			if len(cur) == 0 {
				return
			}
			texts := make([]string, len(cur))
			for i, w := range cur {
				texts[i] = w.Text
			}
			p.Sentences = append(p.Sentences, Sentence{Text: strings.Join(texts, " "), Words: cur})
			cur = nil
		}
		for _, f := range fields {
			cur = append(cur, Word{Index: doc.wordCount, Text: f})
			doc.wordCount++
			if IsTerminator(lastRune(f)) {
				flush()
			}
		}
		flush()
		doc.Paragraphs = append(doc.Paragraphs, p)
	}
	return doc
}

// WordCount — общее число слов.
func (d *Document) WordCount() int { return d.wordCount }

// CharCount — число символов исходного текста, база для расчёта скорости.
func (d *Document) CharCount() int { return d.charCount }

// Words возвращает все слова в порядке набора.
func (d *Document) Words() []Word {
	out := make([]Word, 0, d.wordCount)
	for _, p := range d.Paragraphs {
		for _, s := range p.Sentences {
			out = append(out, s.Words...)
		}
	}
	return out
}

// Text — нормализованный текст в том виде, в каком его наберёт движок без отклонений.
func (d *Document) Text() string {
	var b strings.Builder
	for pi, p := range d.Paragraphs {
		if pi > 0 {
			b.WriteString(ParagraphBreak)
		}
		for si, s := range p.Sentences {
			if si > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// ParagraphBreak — разделитель абзацев в набранном тексте.
const ParagraphBreak = "\n\n"

// IsTerminator сообщает, завершает ли символ предложение.
func IsTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// splitParagraphs режет по строкам, состоящим только из пробельных символов.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, strings.Join(cur, "\n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, strings.Join(cur, "\n"))
	}
	return blocks
}
