package schema

import "testing"

func TestTypeRefWrapping(t *testing.T) {
	tests := []struct {
		name    string
		ref     *TypeRef
		str     string
		nonNull bool
		list    bool
		named   string
	}{
		{"named", NamedType("Pet"), "Pet", false, false, "Pet"},
		{"non-null named", NonNullType(NamedType("Pet")), "Pet!", true, false, "Pet"},
		{"list", ListType(NamedType("Pet")), "[Pet]", false, true, "Pet"},
		{"non-null list of non-null", NonNullType(ListType(NonNullType(NamedType("Pet")))), "[Pet!]!", true, true, "Pet"},
		{"nested lists", ListType(ListType(NamedType("Int"))), "[[Int]]", false, true, "Int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.ref.IsNonNull(); got != tt.nonNull {
				t.Errorf("IsNonNull() = %v, want %v", got, tt.nonNull)
			}
			if got := tt.ref.IsList(); got != tt.list {
				t.Errorf("IsList() = %v, want %v", got, tt.list)
			}
			if got := tt.ref.GetNamedType(); got != tt.named {
				t.Errorf("GetNamedType() = %q, want %q", got, tt.named)
			}
		})
	}
}

func TestTypeRefUnwrapNonNull(t *testing.T) {
	listOfNonNull := NonNullType(ListType(NonNullType(NamedType("Pet"))))

	unwrapped := listOfNonNull.UnwrapNonNull()
	if got, want := unwrapped.String(), "[Pet!]"; got != want {
		t.Errorf("UnwrapNonNull() = %q, want %q", got, want)
	}

	// Removes at most one wrapper; a list stays a list.
	if got := unwrapped.UnwrapNonNull(); got != unwrapped {
		t.Errorf("UnwrapNonNull() on a list should return the receiver")
	}

	elem := unwrapped.Unwrap()
	if got, want := elem.String(), "Pet!"; got != want {
		t.Errorf("Unwrap() = %q, want %q", got, want)
	}
}
