package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/SammoMichael/graphstep/internal/schema"
)

// mustBuildSchema builds a schema from SDL and fails the test on error.
func mustBuildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(sdl)
	require.NoError(t, err, "build schema")
	return s
}
