package resolver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ternpdf/tern/core"
)

// mapSource serves objects from a map.
type mapSource map[int]core.Object

func (m mapSource) Object(num int) (core.Object, error) {
	obj, ok := m[num]
	if !ok {
		return nil, fmt.Errorf("object %d missing", num)
	}
	return obj, nil
}

func TestResolvePassThrough(t *testing.T) {
	r := New(mapSource{})
	got, err := r.Resolve(core.Int(42))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != core.Int(42) {
		t.Errorf("got %v, want 42", got)
	}
}

func TestResolveReference(t *testing.T) {
	src := mapSource{5: core.Name("Target")}
	r := New(src)
	got, err := r.Resolve(core.IndirectRef{Number: 5})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != core.Name("Target") {
		t.Errorf("got %v, want /Target", got)
	}
}

func TestResolveChain(t *testing.T) {
	src := mapSource{
		1: core.IndirectRef{Number: 2},
		2: core.IndirectRef{Number: 3},
		3: core.Int(7),
	}
	got, err := New(src).Resolve(core.IndirectRef{Number: 1})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != core.Int(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestResolveShallowKeepsNestedRefs(t *testing.T) {
	src := mapSource{
		1: core.Dict{"Next": core.IndirectRef{Number: 2}},
		2: core.Int(9),
	}
	got, err := New(src).Resolve(core.IndirectRef{Number: 1})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	dict := got.(core.Dict)
	if _, ok := dict.Get("Next").(core.IndirectRef); !ok {
		t.Errorf("shallow resolve followed nested ref: %v", dict.Get("Next"))
	}
}

func TestResolveDeep(t *testing.T) {
	src := mapSource{
		1: core.Dict{
			"Value": core.IndirectRef{Number: 2},
			"List":  core.Array{core.IndirectRef{Number: 3}},
		},
		2: core.Int(9),
		3: core.Name("Elem"),
	}
	got, err := New(src).ResolveDeep(core.IndirectRef{Number: 1})
	if err != nil {
		t.Fatalf("ResolveDeep returned error: %v", err)
	}
	dict := got.(core.Dict)
	if dict.Get("Value") != core.Int(9) {
		t.Errorf("Value = %v, want 9", dict.Get("Value"))
	}
	arr := dict.Get("List").(core.Array)
	if arr[0] != core.Name("Elem") {
		t.Errorf("List[0] = %v, want /Elem", arr[0])
	}
}

func TestResolveCircular(t *testing.T) {
	src := mapSource{
		1: core.IndirectRef{Number: 2},
		2: core.IndirectRef{Number: 1},
	}
	_, err := New(src).Resolve(core.IndirectRef{Number: 1})
	if err == nil || !strings.Contains(err.Error(), "circular reference") {
		t.Errorf("err = %v, want circular reference error", err)
	}
}

func TestResolveRepeatedCalls(t *testing.T) {
	// The same reference can be resolved twice from separate calls;
	// cycle state does not leak between them.
	src := mapSource{1: core.Int(3)}
	r := New(src)
	for i := 0; i < 2; i++ {
		got, err := r.Resolve(core.IndirectRef{Number: 1})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != core.Int(3) {
			t.Errorf("call %d: got %v, want 3", i, got)
		}
	}
}

func TestResolveDepthLimit(t *testing.T) {
	src := mapSource{}
	for i := 1; i <= 10; i++ {
		src[i] = core.IndirectRef{Number: i + 1}
	}
	src[11] = core.Int(1)

	_, err := New(src, WithMaxDepth(5)).Resolve(core.IndirectRef{Number: 1})
	if err == nil || !strings.Contains(err.Error(), "depth limit") {
		t.Errorf("err = %v, want depth limit error", err)
	}
}

func TestResolveMissingObject(t *testing.T) {
	_, err := New(mapSource{}).Resolve(core.IndirectRef{Number: 7})
	if err == nil {
		t.Error("Resolve of missing object succeeded")
	}
}
