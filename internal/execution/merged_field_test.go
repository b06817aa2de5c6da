package execution

import (
	"testing"

	language "github.com/SammoMichael/graphstep/internal/language"
)

func TestMergedFieldResultKey(t *testing.T) {
	t.Run("name without alias", func(t *testing.T) {
		m := NewMergedField(&language.Field{Name: "pets"})
		if got, want := m.ResultKey(), "pets"; got != want {
			t.Errorf("ResultKey() = %q, want %q", got, want)
		}
	})

	t.Run("alias wins over name", func(t *testing.T) {
		m := NewMergedField(&language.Field{Name: "pets", Alias: "myPets"})
		if got, want := m.ResultKey(), "myPets"; got != want {
			t.Errorf("ResultKey() = %q, want %q", got, want)
		}
		if got, want := m.Name(), "pets"; got != want {
			t.Errorf("Name() = %q, want %q", got, want)
		}
	})

	t.Run("first occurrence decides the key", func(t *testing.T) {
		m := NewMergedField(
			&language.Field{Name: "pets", Alias: "all"},
			&language.Field{Name: "pets"},
		)
		if got, want := m.ResultKey(), "all"; got != want {
			t.Errorf("ResultKey() = %q, want %q", got, want)
		}
		if got, want := m.Size(), 2; got != want {
			t.Errorf("Size() = %d, want %d", got, want)
		}
	})
}

func TestMergedFieldEmpty(t *testing.T) {
	requireInvariant(t, func() {
		NewMergedField()
	})

	var zero MergedField
	if zero.Defined() {
		t.Errorf("zero MergedField should be undefined")
	}
}

func TestMergedFieldCopies(t *testing.T) {
	a := &language.Field{Name: "a"}
	b := &language.Field{Name: "b"}
	src := []*language.Field{a, b}
	m := NewMergedField(src...)

	src[0] = &language.Field{Name: "mutated"}
	if got, want := m.Name(), "a"; got != want {
		t.Errorf("Name() = %q after mutating the source slice, want %q", got, want)
	}

	out := m.Fields()
	out[1] = nil
	if m.Fields()[1] != b {
		t.Errorf("mutating the returned slice should not affect the merged field")
	}
}
