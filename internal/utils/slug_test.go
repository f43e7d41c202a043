package utils

import (
	"testing"
	"time"
)

func TestBuildSlug(t *testing.T) {
	createdAt := time.Date(2015, 12, 24, 10, 0, 0, 0, time.UTC)
	got := BuildSlug(createdAt, "My First Post")
	want := "24-12-2015-my-first-post"
	if got != want {
		t.Fatalf("ожидалось %q, получено %q", want, got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"  Hello,   World!  ": "hello-world",
		"Привет, мир":         "привет-мир",
		"a---b":               "a-b",
		"2 + 2 = 4":           "2-2-4",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q): ожидалось %q, получено %q", in, want, got)
		}
	}
}
