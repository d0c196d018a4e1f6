package time

import (
	"testing"

	perr "sellerbot/internal/platform/errors"
)

func TestParseUnix(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"2024-05-01T10:00:00Z", 1714557600},
		{"2024-05-01T13:00:00+03:00", 1714557600},
		{"2024-05-01T10:00:00.123456Z", 1714557600},
		{"1960-01-01T00:00:00Z", 0},
	}
	for _, c := range cases {
		got, err := ParseUnix(c.in)
		if err != nil || got != c.want {
			t.Fatalf("ParseUnix(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
	}
	if _, err := ParseUnix("yesterday"); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("bad input code = %v", perr.CodeOf(err))
	}
}

func TestFormatUnix(t *testing.T) {
	if got := FormatUnix(1714557600); got != "2024-05-01T10:00:00Z" {
		t.Fatalf("FormatUnix = %q", got)
	}
	if got := FormatUnix(0); got != "1970-01-01T00:00:00Z" {
		t.Fatalf("FormatUnix(0) = %q", got)
	}
}
