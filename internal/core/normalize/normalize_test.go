package normalize

import "testing"

func TestText_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"identity", "Какой размер?", "Какой размер?"},
		{"invalid bytes dropped", string([]byte{0xff, 'o', 'k', 0x80}), "ok"},
		{"controls dropped", "a\x00b\x07c\x7f", "abc"},
		{"nfc composes", "e\u0301", "\u00e9"},
		{"zero widths removed", "раз\u200bмер\ufeff", "размер"},
		{"spaces collapse", "a \t  b", "a b"},
		{"single line break kept", "a \n b", "a\nb"},
		{"paragraphs capped", "a\n\n\n\nb", "a\n\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"trim edges", "  \n hi \n ", "hi"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Text(tc.in)
			if got != tc.out {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Text(got); again != got {
				t.Fatalf("Text not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitize_FastPath(t *testing.T) {
	in := "plain\ttext\n"
	if got := Sanitize(in); got != in {
		t.Fatalf("Sanitize(%q) = %q", in, got)
	}
}
