package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/SammoMichael/graphstep/internal/eventbus"
	"github.com/SammoMichael/graphstep/internal/execid"
	"github.com/SammoMichael/graphstep/internal/executor"
	"github.com/SammoMichael/graphstep/internal/language"
	"github.com/SammoMichael/graphstep/internal/otel"
	"github.com/SammoMichael/graphstep/internal/schema"
)

const rootUsage = `graphstep — GraphQL execution step inspector

USAGE:
  graphstep <command> [flags]

COMMANDS:
  steps            Show the step records an operation derives against a schema
  execute          Execute an operation against JSON-backed data
  render           Parse and re-render a schema SDL in canonical form
  help             Show help for any command
`

const stepsUsage = `steps FLAGS:
  -schema <file>       GraphQL SDL file (required)
  -query <file>        GraphQL operation file (required)
  -operation <name>    Operation name when the document has several
  -vars <json>         Variable values as a JSON object
  -json                Emit step records as JSON instead of a table
`

const executeUsage = `execute FLAGS:
  -schema <file>       GraphQL SDL file (required)
  -query <file>        GraphQL operation file (required)
  -operation <name>    Operation name when the document has several
  -vars <json>         Variable values as a JSON object
  -data <file>         JSON document backing field resolution (required)
  -pretty              Pretty-print the JSON response
  -otel.endpoint <addr> OTLP collector endpoint
  -otel.service <name>  OpenTelemetry service name (default: graphstep)
`

const renderUsage = `render FLAGS:
  -schema <file>       GraphQL SDL file (required)
  -out <file>          Write rendered SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphstep", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "steps":
		return cmdSteps(cmdArgs)
	case "execute":
		return cmdExecute(cmdArgs)
	case "render":
		return cmdRender(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "steps":
		fmt.Print(stepsUsage)
	case "execute":
		fmt.Print(executeUsage)
	case "render":
		fmt.Print(renderUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("-schema is required")
	}
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return s, nil
}

func loadQuery(path string) (*language.QueryDocument, error) {
	if path == "" {
		return nil, fmt.Errorf("-query is required")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := language.ParseQuery(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	return doc, nil
}

func parseVars(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var vars map[string]any
	if err := json.Unmarshal([]byte(raw), &vars); err != nil {
		return nil, fmt.Errorf("parse -vars: %w", err)
	}
	return vars, nil
}

func cmdSteps(args []string) error {
	schemaFile := ""
	queryFile := ""
	operation := ""
	varsJSON := ""
	asJSON := false

	fs := flag.NewFlagSet("steps", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&queryFile, "query", queryFile, "GraphQL operation file")
	fs.StringVar(&operation, "operation", operation, "Operation name")
	fs.StringVar(&varsJSON, "vars", varsJSON, "Variable values as JSON")
	fs.BoolVar(&asJSON, "json", asJSON, "Emit step records as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, stepsUsage)
		return err
	}

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	doc, err := loadQuery(queryFile)
	if err != nil {
		return err
	}
	vars, err := parseVars(varsJSON)
	if err != nil {
		return err
	}

	steps, err := executor.DescribeSteps(s, doc, operation, vars)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(steps, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	for _, step := range steps {
		line := fmt.Sprintf("%-40s %-20s on %s", step.Path, step.Type, step.DefiningType)
		if len(step.Arguments) > 0 {
			line += fmt.Sprintf("  args=%v", step.Arguments)
		}
		fmt.Println(line)
	}
	return nil
}

func cmdExecute(args []string) error {
	schemaFile := ""
	queryFile := ""
	operation := ""
	varsJSON := ""
	dataFile := ""
	pretty := false
	otelEndpoint := ""
	otelService := "graphstep"

	fs := flag.NewFlagSet("execute", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&queryFile, "query", queryFile, "GraphQL operation file")
	fs.StringVar(&operation, "operation", operation, "Operation name")
	fs.StringVar(&varsJSON, "vars", varsJSON, "Variable values as JSON")
	fs.StringVar(&dataFile, "data", dataFile, "JSON document backing field resolution")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print the JSON response")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, executeUsage)
		return err
	}
	if dataFile == "" {
		fmt.Fprint(os.Stderr, executeUsage)
		return fmt.Errorf("-data is required")
	}

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	doc, err := loadQuery(queryFile)
	if err != nil {
		return err
	}
	vars, err := parseVars(varsJSON)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(dataFile)
	if err != nil {
		return err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse -data: %w", err)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx, _ := execid.NewContext(context.Background())
	ex := executor.NewExecutor(newDataRuntime(), s)
	result := ex.ExecuteRequest(ctx, doc, operation, vars, data)

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func cmdRender(args []string) error {
	schemaFile := ""
	outFile := ""

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&outFile, "out", outFile, "Write rendered SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, renderUsage)
		return err
	}

	s, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	sdl := schema.Render(s)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}
