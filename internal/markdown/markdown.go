// Package markdown derives display fields from markdown content: plain
// text, word counts, reading time, excerpts, and rendered HTML.
package markdown

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// wordsPerMinute is the reading speed the estimate assumes.
const wordsPerMinute = 200

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// PlainText strips markdown structure and returns the readable text.
func PlainText(markdown string) string {
	source := []byte(markdown)
	node := md.Parser().Parse(text.NewReader(source))

	var builder strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindText:
			segment := n.(*ast.Text).Segment
			builder.Write(segment.Value(source))
			builder.WriteByte(' ')
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			// Code contributes to reading time but not to excerpts;
			// include its lines as-is.
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				builder.Write(seg.Value(source))
				builder.WriteByte(' ')
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(builder.String()), " ")
}

// CountWords counts whitespace-separated words in text.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime estimates reading time in whole minutes at 200 words/minute.
// Non-empty content always reads as at least one minute.
func ReadingTime(markdown string) int {
	words := CountWords(PlainText(markdown))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

// Excerpt returns up to maxLen characters of plain text, cut at a word
// boundary with a trailing ellipsis when truncated. maxLen counts runes,
// not bytes, so multi-byte text is never split mid-character.
func Excerpt(markdown string, maxLen int) string {
	plain := PlainText(markdown)
	if utf8.RuneCountInString(plain) <= maxLen {
		return plain
	}
	cut := string([]rune(plain)[:maxLen])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// RenderHTML renders markdown to HTML with GFM extensions.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
