package executor

import (
	"context"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
)

const petSDL = `
type Query {
  user: User
  pets: [Pet!]
  matrix: [[Int]]
}

type User {
  name: String!
  nickname: String
}

type Pet {
  name: String!
}
`

func TestCompleteValueNonNullToNullableParent(t *testing.T) {
	s := mustBuildSchema(t, petSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user": NewMockValueResolver(map[string]any{"name": nil}),
		"User.name":  sourceFieldResolver("name"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ user { name } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"user": nil}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got, want := result.Errors[0].Path.String(), "user.name"; got != want {
		t.Errorf("error path = %q, want %q", got, want)
	}
}

func TestCompleteValueNullableField(t *testing.T) {
	s := mustBuildSchema(t, petSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user":    NewMockValueResolver(map[string]any{"name": "Ada"}),
		"User.name":     sourceFieldResolver("name"),
		"User.nickname": sourceFieldResolver("nickname"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ user { name nickname } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"user": map[string]any{"name": "Ada", "nickname": nil}}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestCompleteListValueNonNullElement(t *testing.T) {
	s := mustBuildSchema(t, petSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.pets": NewMockValueResolver([]any{
			map[string]any{"name": "Rex"},
			nil,
		}),
		"Pet.name": sourceFieldResolver("name"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ pets { name } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	// Element type is Pet!, so a nil element nullifies the whole pets value.
	want := map[string]any{"pets": nil}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got, want := result.Errors[0].Path.String(), "pets[1]"; got != want {
		t.Errorf("error path = %q, want %q", got, want)
	}
}

func TestCompleteNestedLists(t *testing.T) {
	s := mustBuildSchema(t, petSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.matrix": NewMockValueResolver([]any{
			[]any{1, 2},
			[]any{3},
			nil,
		}),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ matrix }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"matrix": []any{
		[]any{1, 2},
		[]any{3},
		nil,
	}}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestNonNullBubblesToData(t *testing.T) {
	sdl := heredoc.Doc(`
		type Query {
		  user: User!
		}
		type User {
		  name: String!
		}
	`)
	s := mustBuildSchema(t, sdl)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user": NewMockValueResolver(map[string]any{"name": nil}),
		"User.name":  sourceFieldResolver("name"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ user { name } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	// Every ancestor of user.name is Non-Null, so data collapses to null.
	if result.Data != nil {
		t.Errorf("data = %v, want null", result.Data)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got, want := result.Errors[0].Path.String(), "user.name"; got != want {
		t.Errorf("error path = %q, want %q", got, want)
	}
}

func TestTypenameMetaField(t *testing.T) {
	s := mustBuildSchema(t, petSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user": NewMockValueResolver(map[string]any{"name": "Ada"}),
		"User.name":  sourceFieldResolver("name"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ __typename user { __typename name } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{
		"__typename": "Query",
		"user":       map[string]any{"__typename": "User", "name": "Ada"},
	}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}
