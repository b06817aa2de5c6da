package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
)

const asyncSDL = `
type Query {
  a: Int @async
  b: Int @async
  user: User
  owner: User!
}

type User {
  profile: Profile! @async
  posts: [Post] @async
}

type Profile {
  bio: String
}

type Post {
  title: String
}
`

func TestAsyncFieldsShareOneBatchPerDepth(t *testing.T) {
	s := mustBuildSchema(t, asyncSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver(1),
		"Query.b": NewMockValueResolver(2),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ a b }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	calls := rt.GetCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	for _, c := range calls {
		if c.Kind != CallKindAsync {
			t.Errorf("call %s.%s kind = %q, want async", c.ObjectType, c.Field, c.Kind)
		}
		if c.BatchID != 1 {
			t.Errorf("call %s.%s batch = %d, want 1 (same depth, same batch)", c.ObjectType, c.Field, c.BatchID)
		}
	}
}

func TestAsyncErrorBubblesToNearestNullableAncestor(t *testing.T) {
	s := mustBuildSchema(t, asyncSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user":   NewMockValueResolver(map[string]any{}),
		"User.profile": NewMockErrorResolver(errors.New("profile backend down")),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ user { profile { bio } } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	// profile is Non-Null, so its failure nulls the nullable user position.
	want := map[string]any{"user": nil}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got, want := result.Errors[0].Path.String(), "user.profile"; got != want {
		t.Errorf("error path = %q, want %q", got, want)
	}
}

func TestAsyncErrorNullsDataWhenChainIsNonNull(t *testing.T) {
	s := mustBuildSchema(t, asyncSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.owner":  NewMockValueResolver(map[string]any{}),
		"User.profile": NewMockErrorResolver(errors.New("profile backend down")),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ owner { profile { bio } } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	if result.Data != nil {
		t.Errorf("data = %v, want null (owner and profile are both Non-Null)", result.Data)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestNullifiedSubtreeSkipsPendingResults(t *testing.T) {
	s := mustBuildSchema(t, asyncSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.user":   NewMockValueResolver(map[string]any{}),
		"User.profile": NewMockErrorResolver(errors.New("profile backend down")),
		"User.posts":   NewMockValueResolver([]any{map[string]any{"title": "hello"}}),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, heredoc.Doc(`
		{
		  user {
		    profile { bio }
		    posts { title }
		  }
		}
	`))
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	// profile's failure nullifies user before the posts result lands; the
	// posts completion must not resurrect the subtree.
	want := map[string]any{"user": nil}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
}
