package fetch

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hi &amp; bye</p>", "Hi & bye"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple \n\t spaces  </div>", "Multiple spaces"},
		{"", ""},
		{`<a href="url">Link</a> text`, "Link text"},
		{"&lt;script&gt; &quot;quoted&quot; &#39;x&#39;", `<script> "quoted" 'x'`},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a bcdef", 5, "a..."},
		{"this is a long string", 10, "this is..."},
		{"hello world again", 12, "hello..."},
		{"supercalifragilistic", 10, "superca..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateNeverSplitsWords(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog and keeps running far away"
	words := make(map[string]bool)
	for _, w := range strings.Fields(input) {
		words[w] = true
	}

	for n := 10; n < len(input); n++ {
		got := Truncate(input, n)
		if !strings.HasSuffix(got, Ellipsis) {
			t.Fatalf("Truncate(_, %d) = %q, missing ellipsis", n, got)
		}
		if utf8.RuneCountInString(got) > n {
			t.Fatalf("Truncate(_, %d) = %q exceeds budget", n, got)
		}
		for _, w := range strings.Fields(strings.TrimSuffix(got, Ellipsis)) {
			if !words[w] {
				t.Fatalf("Truncate(_, %d) = %q split word %q", n, got, w)
			}
		}
	}
}

func TestTruncateUTF8(t *testing.T) {
	got := Truncate("こんにちは 世界です よろしく", 10)
	want := "こんにちは..."
	if got != want {
		t.Errorf("Truncate = %q, want %q", got, want)
	}
}
