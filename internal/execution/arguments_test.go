package execution

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArgumentValuesExplicitNull(t *testing.T) {
	args := NewArgumentValues(map[string]any{
		"filter": nil,
		"first":  10,
	})

	t.Run("explicit null is present", func(t *testing.T) {
		v, ok := args.Lookup("filter")
		if !ok {
			t.Fatalf("Lookup(filter) reported absent, want present with nil value")
		}
		if v != nil {
			t.Errorf("Lookup(filter) = %v, want nil", v)
		}
		if !args.Has("filter") {
			t.Errorf("Has(filter) = false, want true")
		}
	})

	t.Run("absent argument is absent", func(t *testing.T) {
		if _, ok := args.Lookup("after"); ok {
			t.Errorf("Lookup(after) reported present, want absent")
		}
		if args.Has("after") {
			t.Errorf("Has(after) = true, want false")
		}
		if v := args.Get("after"); v != nil {
			t.Errorf("Get(after) = %v, want nil", v)
		}
	})
}

func TestArgumentValuesDefensiveCopy(t *testing.T) {
	source := map[string]any{"first": 10}
	args := NewArgumentValues(source)

	source["first"] = 99
	source["extra"] = true

	if got := args.Get("first"); got != 10 {
		t.Errorf("Get(first) = %v, want 10 after mutating the source map", got)
	}
	if args.Has("extra") {
		t.Errorf("Has(extra) = true, want false after mutating the source map")
	}
}

func TestArgumentValuesNames(t *testing.T) {
	args := NewArgumentValues(map[string]any{"b": 1, "a": 2, "c": nil})

	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, args.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestNoArgumentValues(t *testing.T) {
	args := NoArgumentValues()

	if args.Len() != 0 {
		t.Errorf("Len() = %d, want 0", args.Len())
	}
	if _, ok := args.Lookup("anything"); ok {
		t.Errorf("Lookup on empty set reported present")
	}
	if empty := NewArgumentValues(nil); empty.Len() != 0 {
		t.Errorf("NewArgumentValues(nil).Len() = %d, want 0", empty.Len())
	}
}
