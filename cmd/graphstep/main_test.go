package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run([]string{"frobnicate"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestRunMissingCommand(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatalf("expected error for missing command")
	}
}

func TestCmdHelp(t *testing.T) {
	require.NoError(t, run([]string{"help"}))
	require.NoError(t, run([]string{"help", "steps"}))
	require.Error(t, run([]string{"help", "frobnicate"}))
}

func TestCmdRender(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", heredoc.Doc(`
		type Query {
		  pets: [Pet!]!
		}
		type Pet {
		  name: String!
		}
	`))
	outFile := filepath.Join(dir, "out.graphql")

	require.NoError(t, run([]string{"render", "-schema", schemaFile, "-out", outFile}))

	rendered, err := os.ReadFile(outFile)
	require.NoError(t, err)
	if !strings.Contains(string(rendered), "pets: [Pet!]!") {
		t.Errorf("rendered SDL missing pets field:\n%s", rendered)
	}
}

func TestCmdStepsRequiresSchema(t *testing.T) {
	require.Error(t, run([]string{"steps"}))
}

func TestCmdExecuteRequiresData(t *testing.T) {
	require.Error(t, run([]string{"execute", "-schema", "x", "-query", "y"}))
}
