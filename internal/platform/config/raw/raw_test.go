package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " sellerbot ")
	c := New().Prefix("LOG_")
	if got := c.Get("SERVICE", "x"); got != "sellerbot" {
		t.Fatalf("Get = %q, want %q", got, "sellerbot")
	}
	if got := c.Get("MISSING", "def"); got != "def" {
		t.Fatalf("Get missing = %q, want %q", got, "def")
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	t.Setenv("B_T1", "YES")
	t.Setenv("B_T2", " 1 ")
	t.Setenv("B_F1", "no")
	cases := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"F1", true, false},
		{"MISSING", true, true},
	}
	for _, tc := range cases {
		if got := c.GetBool(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetBool(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("I_")
	t.Setenv("I_OK", " 42 ")
	t.Setenv("I_BAD", "12x")
	t.Setenv("I_NEG", "-5")
	cases := []struct {
		key       string
		def, want int
	}{
		{"OK", 0, 42},
		{"BAD", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, tc := range cases {
		if got := c.GetInt(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}
}
