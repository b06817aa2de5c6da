package main

import (
	"context"
	"fmt"

	"github.com/SammoMichael/graphstep/internal/execution"
	"github.com/SammoMichael/graphstep/internal/executor"
)

// dataRuntime resolves fields by projecting keys out of JSON-decoded values.
// It backs the execute command: the -data document is the root source, every
// field reads the key matching its name, and abstract types resolve through a
// __typename member.
type dataRuntime struct{}

func newDataRuntime() *dataRuntime { return &dataRuntime{} }

func (r *dataRuntime) project(source any, field string) any {
	if m, ok := source.(map[string]any); ok {
		return m[field]
	}
	return nil
}

func (r *dataRuntime) ResolveSync(ctx context.Context, objectType string, field string, source any, args execution.ArgumentValues) (any, error) {
	return r.project(source, field), nil
}

func (r *dataRuntime) BatchResolveAsync(ctx context.Context, tasks []executor.AsyncResolveTask) []executor.AsyncResolveResult {
	results := make([]executor.AsyncResolveResult, len(tasks))
	for i, task := range tasks {
		results[i] = executor.AsyncResolveResult{Value: r.project(task.Source, task.Field)}
	}
	return results
}

func (r *dataRuntime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if m, ok := value.(map[string]any); ok {
		if typename, ok := m["__typename"].(string); ok {
			return typename, nil
		}
	}
	return "", fmt.Errorf("value for abstract type %s has no __typename member", abstractType)
}

func (r *dataRuntime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	return value, nil
}
