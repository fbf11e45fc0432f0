package utils

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("expected bcrypt cost 10 hash, got %q", hash)
	}
	if !CheckPasswordHash("password123", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("password124", hash) {
		t.Error("expected wrong password to fail")
	}
	if CheckPasswordHash("password123", "not-a-hash") {
		t.Error("expected malformed hash to fail")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want uint
		ok   bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseID(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReadingStats(t *testing.T) {
	if got := WordCount("  hello   world\nfoo\tbar "); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := ReadingTime(""); got != 1 {
		t.Errorf("ReadingTime(empty) = %d, want 1", got)
	}
	if got := ReadingTime(strings.Repeat("word ", 200)); got != 1 {
		t.Errorf("ReadingTime(200 words) = %d, want 1", got)
	}
	if got := ReadingTime(strings.Repeat("word ", 201)); got != 2 {
		t.Errorf("ReadingTime(201 words) = %d, want 2", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Hello\n\nSome **bold** text.")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold markup, got %q", out)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("expected heading, got %q", out)
	}

	out = RenderMarkdown("<script>alert(1)</script>\n\nsafe")
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitizing: %q", out)
	}

	out = RenderMarkdown("![cat](https://example.com/cat.png)")
	if !strings.Contains(out, `loading="lazy"`) || !strings.Contains(out, `referrerpolicy="no-referrer"`) {
		t.Errorf("expected image attributes, got %q", out)
	}

	if RenderMarkdown("") != "" {
		t.Error("empty content should render empty")
	}
}

func TestEnhanceImagesLeavesPlainHTML(t *testing.T) {
	in := "<p>no images here</p>"
	if got := EnhanceImages(in); got != in {
		t.Errorf("EnhanceImages changed input without images: %q", got)
	}
}
