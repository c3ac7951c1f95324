package locator

import (
	"strings"
	"testing"

	"vidgrab/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.LocatorKind
	}{
		{name: "empty", in: "", want: model.LocatorInvalid},
		{name: "blank", in: " \t ", want: model.LocatorInvalid},
		{name: "https", in: "https://www.youtube.com/watch?v=abc", want: model.LocatorDirect},
		{name: "http", in: "http://youtu.be/abc", want: model.LocatorDirect},
		{name: "upper case scheme", in: "HTTPS://example.com", want: model.LocatorDirect},
		{name: "mixed case bare token", in: "HtTp", want: model.LocatorDirect},
		{name: "leading spaces", in: "  https://example.com", want: model.LocatorDirect},
		{name: "keyword", in: "funny cats", want: model.LocatorSearch},
		{name: "pseudo scheme", in: "ytsearch:lofi", want: model.LocatorSearch},
		{name: "short keyword", in: "htt", want: model.LocatorSearch},
		{name: "www without scheme", in: "www.youtube.com/watch?v=abc", want: model.LocatorSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://example.com/watch?v=abc&list=xyz", want: "https://example.com/watch?v=abc"},
		{in: "https://example.com/watch?v=abc", want: "https://example.com/watch?v=abc"},
		{in: "https://example.com/watch?v=abc&t=1&list=xyz", want: "https://example.com/watch?v=abc"},
		{in: " https://example.com/a ", want: "https://example.com/a"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadLines(t *testing.T) {
	in := "https://example.com/watch?v=abc&list=xyz\r\n\r\n  \t\nfunny cats\r\n\f\nlast"
	got, err := ReadLines(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	want := []string{"https://example.com/watch?v=abc&list=xyz", "funny cats", "last"}
	if len(got) != len(want) {
		t.Fatalf("ReadLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"https://example.com/watch?v=abc&list=xyz", "", "funny cats", "   "})
	if len(got) != 2 {
		t.Fatalf("Filter() len = %d, want 2 (%q)", len(got), got)
	}
	if Classify(got[0]) != model.LocatorDirect || Classify(got[1]) != model.LocatorSearch {
		t.Errorf("unexpected kinds for %q", got)
	}
}
