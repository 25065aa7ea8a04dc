package msgpack

import (
	goerrors "errors"
	"testing"

	"github.com/nvimbind/nvimgen/errors"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("Buffer", 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("Window", 1); err != nil {
		t.Fatal(err)
	}

	tag, err := reg.Tag("Window")
	if err != nil || tag != 1 {
		t.Errorf("Tag(Window) = %d, %v", tag, err)
	}
	kind, err := reg.Kind(0)
	if err != nil || kind != "Buffer" {
		t.Errorf("Kind(0) = %q, %v", kind, err)
	}
}

func TestRegistry_Missing(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Tag("Tabpage"); err == nil {
		t.Error("Tag of unregistered kind should fail")
	}
	_, err := reg.Kind(5)
	var e *errors.Error
	if !goerrors.As(err, &e) || e.Kind != errors.KindUnknownExtTag {
		t.Errorf("expected unknown_ext_tag, got %v", err)
	}
}

func TestRegistry_Duplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("Buffer", 0); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("Buffer", 3); err == nil {
		t.Error("duplicate name should fail")
	}
	if err := reg.Register("Window", 0); err == nil {
		t.Error("duplicate tag should fail")
	}
}

func TestRegistry_KindsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Window", 1)
	reg.Register("Buffer", 0)
	reg.Register("Tabpage", 2)

	kinds := reg.Kinds()
	want := []string{"Buffer", "Tabpage", "Window"}
	if len(kinds) != len(want) {
		t.Fatalf("got %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}
