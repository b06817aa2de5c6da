package schema

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildFromSDL(t *testing.T) {
	s, err := BuildFromSDL(heredoc.Doc(`
		type Query {
		  pets(first: Int = 10): [Pet!]! @async
		  favorite: Animal
		}

		interface Animal {
		  name: String!
		}

		type Pet implements Animal {
		  name: String!
		  nickname: String @deprecated(reason: "use name")
		}

		type Wolf implements Animal {
		  name: String!
		}

		union Friend = Pet | Wolf

		enum Mood {
		  HAPPY
		  SLEEPY
		}
	`))
	require.NoError(t, err)

	t.Run("root type", func(t *testing.T) {
		q := s.GetQueryType()
		require.NotNil(t, q)
		if q.Name != "Query" {
			t.Errorf("query type = %q, want Query", q.Name)
		}
	})

	t.Run("field types and async flag", func(t *testing.T) {
		pets := s.GetQueryType().GetField("pets")
		require.NotNil(t, pets)
		if got, want := pets.Type.String(), "[Pet!]!"; got != want {
			t.Errorf("pets type = %q, want %q", got, want)
		}
		if !pets.Async {
			t.Errorf("pets should be async")
		}
		first := pets.GetArgument("first")
		require.NotNil(t, first)
		if first.DefaultValue != 10 {
			t.Errorf("first default = %v, want 10", first.DefaultValue)
		}
	})

	t.Run("interface possible types", func(t *testing.T) {
		animal := s.GetType("Animal")
		require.NotNil(t, animal)
		if !animal.IsAbstract() {
			t.Errorf("Animal should be abstract")
		}
		want := []string{"Pet", "Wolf"}
		if diff := cmp.Diff(want, animal.PossibleTypes); diff != "" {
			t.Errorf("possible types mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("union members", func(t *testing.T) {
		friend := s.GetType("Friend")
		require.NotNil(t, friend)
		want := []string{"Pet", "Wolf"}
		if diff := cmp.Diff(want, friend.PossibleTypes); diff != "" {
			t.Errorf("union members mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("deprecation", func(t *testing.T) {
		nickname := s.GetType("Pet").GetField("nickname")
		require.NotNil(t, nickname)
		if !nickname.IsDeprecated || nickname.DeprecationReason != "use name" {
			t.Errorf("nickname deprecation = (%v, %q), want (true, \"use name\")", nickname.IsDeprecated, nickname.DeprecationReason)
		}
	})

	t.Run("builtin scalars installed", func(t *testing.T) {
		for _, name := range []string{"String", "Int", "Float", "Boolean", "ID"} {
			if s.GetType(name) == nil {
				t.Errorf("builtin scalar %s missing", name)
			}
		}
	})

	t.Run("leaf kinds", func(t *testing.T) {
		if !s.GetType("Mood").IsLeaf() {
			t.Errorf("Mood should be a leaf type")
		}
		if s.GetType("Pet").IsLeaf() {
			t.Errorf("Pet should not be a leaf type")
		}
	})
}

func TestBuildFromSDLMissingQuery(t *testing.T) {
	_, err := BuildFromSDL(`type Mutation { noop: Boolean }`)
	require.Error(t, err)
}

func TestBuildFromSDLCustomRootTypes(t *testing.T) {
	s, err := BuildFromSDL(heredoc.Doc(`
		schema {
		  query: Root
		}
		type Root {
		  ping: String
		}
	`))
	require.NoError(t, err)
	require.NotNil(t, s.GetQueryType())
	if s.GetQueryType().Name != "Root" {
		t.Errorf("query type = %q, want Root", s.GetQueryType().Name)
	}
}
