package module

import (
	"testing"

	kit "sellerbot/internal/platform/testkit"
	phttp "sellerbot/internal/platform/net/http"
)

type Greeter interface{ Greet() string }

type greeter struct{ s string }

func (g greeter) Greet() string { return g.s }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Greeter Greeter
		Count   int
	}
	type hidden struct {
		g Greeter
	}
	cases := []struct {
		name  string
		ports any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"direct", Greeter(greeter{"hi"}), "hi", true},
		{"bundle", bundle{Greeter: greeter{"yo"}}, "yo", true},
		{"unexported field", hidden{g: greeter{"no"}}, "", false},
	}
	for _, c := range cases {
		got, ok := PortsOf[Greeter](fakeModule{name: c.name, ports: c.ports})
		if ok != c.ok {
			t.Fatalf("%s: ok = %v, want %v", c.name, ok, c.ok)
		}
		if ok && got.Greet() != c.want {
			t.Fatalf("%s: Greet = %q, want %q", c.name, got.Greet(), c.want)
		}
	}
}

func TestMustPortsOf_PanicsWithName(t *testing.T) {
	kit.MustPanic(t, func() { _ = MustPortsOf[Greeter](fakeModule{name: "observer"}) })
	g := MustPortsOf[Greeter](fakeModule{name: "ok", ports: greeter{"x"}})
	if g.Greet() != "x" {
		t.Fatalf("Greet = %q, want x", g.Greet())
	}
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("summaries", greeter{"a"})
	Register("summaries", greeter{"b"})

	got, ok := PortsAs[greeter]("summaries")
	if !ok || got.s != "b" {
		t.Fatalf("PortsAs = %+v, %v; want b", got, ok)
	}
	if _, ok := PortsAs[int]("summaries"); ok {
		t.Fatalf("PortsAs with wrong type = ok")
	}
	if _, ok := PortsAs[greeter]("missing"); ok {
		t.Fatalf("PortsAs missing = ok")
	}
	Reset()
	if _, ok := PortsAs[greeter]("summaries"); ok {
		t.Fatalf("PortsAs after Reset = ok")
	}
}
