package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()
	if got := IfEmpty(nil, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty default = %#v", got)
	}
	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty kept = %#v", got)
	}
}

func TestOr(t *testing.T) {
	t.Parallel()
	if got := Or("", "  ", " Анна "); got != "Анна" {
		t.Fatalf("Or = %q", got)
	}
	if got := Or(" ", ""); got != "" {
		t.Fatalf("Or all blank = %q", got)
	}
}

func TestSectionAndJoinLines(t *testing.T) {
	t.Parallel()
	got := JoinLines(
		Section("Достоинства", " удобный "),
		Section("Недостатки", "   "),
		Section("Комментарий", "рекомендую"),
	)
	want := "Достоинства: удобный\nКомментарий: рекомендую"
	if got != want {
		t.Fatalf("JoinLines = %q, want %q", got, want)
	}
	if JoinLines("", " ") != "" {
		t.Fatalf("JoinLines of blanks should be empty")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"привет", 10, "привет"},
		{"привет", 3, "при…"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.n); got != c.want {
			t.Fatalf("Truncate(%q,%d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
