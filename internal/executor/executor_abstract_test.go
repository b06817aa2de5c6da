package executor

import (
	"context"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
)

const animalSDL = `
type Query {
  favorite: Animal!
  found: SearchResult
}

interface Animal {
  name: String!
}

type Dog implements Animal {
  name: String!
  barkVolume: Int
}

type Cat implements Animal {
  name: String!
  lives: Int
}

union SearchResult = Dog | Cat
`

func TestAbstractValueNarrowing(t *testing.T) {
	s := mustBuildSchema(t, animalSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.favorite": NewMockValueResolver(map[string]any{
			"__typename": "Dog",
			"name":       "Rex",
			"barkVolume": 11,
		}),
		"Dog.name":       sourceFieldResolver("name"),
		"Dog.barkVolume": sourceFieldResolver("barkVolume"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, heredoc.Doc(`
		{
		  favorite {
		    __typename
		    name
		    ... on Dog {
		      barkVolume
		    }
		  }
		}
	`))
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"favorite": map[string]any{
		"__typename": "Dog",
		"name":       "Rex",
		"barkVolume": 11,
	}}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestAbstractValueUnionMember(t *testing.T) {
	s := mustBuildSchema(t, animalSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.found": NewMockValueResolver(map[string]any{
			"__typename": "Cat",
			"name":       "Mia",
			"lives":      9,
		}),
		"Cat.name":  sourceFieldResolver("name"),
		"Cat.lives": sourceFieldResolver("lives"),
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, heredoc.Doc(`
		{
		  found {
		    ... on Cat {
		      name
		      lives
		    }
		  }
		}
	`))
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"found": map[string]any{"name": "Mia", "lives": 9}}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestAbstractValueImpossibleType(t *testing.T) {
	s := mustBuildSchema(t, animalSDL)
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.found": NewMockValueResolver(map[string]any{"__typename": "Cat"}),
	})
	SetTypeResolver(rt, func(value any) (string, error) {
		return "Query", nil
	})
	ex := NewExecutor(rt, s)

	doc := mustParseQuery(t, `{ found { __typename } }`)
	result := ex.ExecuteRequest(context.Background(), doc, "", nil, nil)

	want := map[string]any{"found": nil}
	if diff := cmp.Diff(want, result.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if got, want := result.Errors[0].Path.String(), "found"; got != want {
		t.Errorf("error path = %q, want %q", got, want)
	}
}
