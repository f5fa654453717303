package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlainTextStripsStructure(t *testing.T) {
	md := "# Heading\n\nSome **bold** text with a [link](https://example.com).\n"
	got := PlainText(md)
	for _, forbidden := range []string{"#", "**", "[", "]("} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("PlainText left markdown syntax %q in %q", forbidden, got)
		}
	}
	for _, want := range []string{"Heading", "bold", "link"} {
		if !strings.Contains(got, want) {
			t.Fatalf("PlainText dropped %q from %q", want, got)
		}
	}
}

func TestPlainTextIncludesCodeBlocks(t *testing.T) {
	md := "intro\n\n```go\nfunc main() {}\n```\n\n    indented code\n"
	got := PlainText(md)
	for _, want := range []string{"intro", "func main() {}", "indented code"} {
		if !strings.Contains(got, want) {
			t.Fatalf("PlainText dropped %q from %q", want, got)
		}
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime(""); got != 0 {
		t.Fatalf("ReadingTime(empty) = %d, want 0", got)
	}
	if got := ReadingTime("a few words here"); got != 1 {
		t.Fatalf("ReadingTime(short) = %d, want 1", got)
	}
	// 450 words at 200 wpm rounds up to 3 minutes.
	long := strings.TrimSpace(strings.Repeat("word ", 450))
	if got := ReadingTime(long); got != 3 {
		t.Fatalf("ReadingTime(450 words) = %d, want 3", got)
	}
}

func TestExcerpt(t *testing.T) {
	short := Excerpt("just a short sentence", 160)
	if short != "just a short sentence" {
		t.Fatalf("Excerpt(short) = %q, want input unchanged", short)
	}

	long := strings.TrimSpace(strings.Repeat("lorem ipsum ", 40))
	got := Excerpt(long, 50)
	if len(got) > 50+len("…") {
		t.Fatalf("Excerpt length = %d, want at most 50 plus ellipsis", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated excerpt %q missing ellipsis", got)
	}
}

func TestExcerptCutsOnRuneBoundary(t *testing.T) {
	// Multi-byte text with no spaces forces the cut to land mid-string.
	long := strings.Repeat("日本語の文章と集合", 40)
	got := Excerpt(long, 160)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	body := strings.TrimSuffix(got, "…")
	if n := utf8.RuneCountInString(body); n > 160 {
		t.Fatalf("excerpt has %d runes, want at most 160", n)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Title\n\nbody")
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "body") {
		t.Fatalf("unexpected render output: %q", html)
	}
}
