package graph

import "testing"

func TestGraphSetSemantics(t *testing.T) {
	g := New()
	tr := Triple{"http://x/s", "http://x/p", Literal("o")}

	g.Add(tr)
	g.Add(tr)
	if g.Len() != 1 {
		t.Errorf("duplicate add should be a no-op, len = %d", g.Len())
	}
	if !g.Has(tr) {
		t.Error("graph should contain the added triple")
	}

	// Same value, different term kind: distinct triples.
	g.Add(Triple{"http://x/s", "http://x/p", IRI("o")})
	g.Add(Triple{"http://x/s", "http://x/p", LangLiteral("o", "en")})
	if g.Len() != 3 {
		t.Errorf("literal, IRI, and tagged literal must be distinct, len = %d", g.Len())
	}
}

func TestGraphObjects(t *testing.T) {
	g := New()
	g.Add(Triple{"s", "p", Literal("first")})
	g.Add(Triple{"s", "p", Literal("second")})
	g.Add(Triple{"s", "q", Literal("other")})

	objs := g.Objects("s", "p")
	if len(objs) != 2 || objs[0].Value != "first" || objs[1].Value != "second" {
		t.Errorf("unexpected objects in insertion order: %v", objs)
	}
}

func TestGraphClone(t *testing.T) {
	g := New()
	g.Bind("ex", "http://example.org/")
	g.Add(Triple{"s", "p", Literal("o")})

	c := g.Clone()
	c.Add(Triple{"s2", "p2", Literal("o2")})
	c.Bind("other", "http://other.org/")

	if g.Len() != 1 {
		t.Errorf("mutating the clone changed the original, len = %d", g.Len())
	}
	if _, ok := g.Prefixes()["other"]; ok {
		t.Error("clone prefix binding leaked into the original")
	}
	if c.Len() != 2 {
		t.Errorf("clone should carry original triples plus its own, len = %d", c.Len())
	}
}

func TestObjectString(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{IRI("http://x/a"), "<http://x/a>"},
		{Literal("hi"), `"hi"`},
		{LangLiteral("hi", "en"), `"hi"@en`},
		{TypedLiteral("3", "http://www.w3.org/2001/XMLSchema#integer"), `"3"^^<http://www.w3.org/2001/XMLSchema#integer>`},
	}
	for _, tt := range tests {
		if got := tt.obj.String(); got != tt.want {
			t.Errorf("Object.String() = %s, want %s", got, tt.want)
		}
	}
}
