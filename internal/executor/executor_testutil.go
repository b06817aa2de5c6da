package executor

import (
	"context"
	"testing"

	execution "github.com/SammoMichael/graphstep/internal/execution"
	language "github.com/SammoMichael/graphstep/internal/language"
)

// sourceFieldResolver returns a MockResolver that projects a key out of a
// map-shaped source value.
func sourceFieldResolver(field string) MockResolver {
	return func(ctx context.Context, source any, args execution.ArgumentValues) (any, error) {
		if m, ok := source.(map[string]any); ok {
			return m[field], nil
		}
		return nil, nil
	}
}

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}
