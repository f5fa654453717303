package recordid

import (
	"strings"
	"testing"
)

func TestNewMatchesPattern(t *testing.T) {
	id := New("reading")
	if !IsValid(id) {
		t.Fatalf("generated id %q does not match the id pattern", id)
	}
	if !strings.HasPrefix(id, "reading_") {
		t.Fatalf("id %q missing entity prefix", id)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New("blog")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestHasPrefix(t *testing.T) {
	id := New("blog")
	if !HasPrefix(id, "blog") {
		t.Fatalf("HasPrefix(%q, blog) = false", id)
	}
	if HasPrefix(id, "reading") {
		t.Fatalf("HasPrefix(%q, reading) = true", id)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "blog", "blog_abc_12345678", "BLOG_123_abcdefab", "blog_123_short"} {
		if err := Validate(bad); err == nil {
			t.Fatalf("Validate(%q) accepted an invalid id", bad)
		}
	}
}
