package executor

import (
	"fmt"

	execution "github.com/SammoMichael/graphstep/internal/execution"
	language "github.com/SammoMichael/graphstep/internal/language"
	schema "github.com/SammoMichael/graphstep/internal/schema"
)

// StepDescription is a flattened view of one step record produced by the
// static walk, suitable for rendering and JSON output.
type StepDescription struct {
	Path         string   `json:"path"`
	Type         string   `json:"type"`
	Field        string   `json:"field"`
	DefiningType string   `json:"definingType"`
	NonNull      bool     `json:"nonNull"`
	List         bool     `json:"list"`
	Arguments    []string `json:"arguments,omitempty"`
}

// DescribeSteps walks an operation against the schema without resolving any
// values and returns the step records its execution would derive, in query
// order. Runtime-only derivations cannot appear in a static walk: list
// element steps need concrete values, and abstract fields keep their declared
// interface or union type.
func DescribeSteps(s *schema.Schema, document *language.QueryDocument, operationName string, variableValues map[string]any) ([]StepDescription, error) {
	operation := getOperation(document, operationName)
	if operation == nil {
		return nil, fmt.Errorf("operation not found")
	}
	coerced, err := coerceVariableValues(s, operation, variableValues)
	if err != nil {
		return nil, err
	}
	rootType, err := rootTypeForOperation(s, operation)
	if err != nil {
		return nil, err
	}

	state := &executionState{
		schema:         s,
		document:       document,
		variableValues: coerced,
	}
	rootStep := execution.NewStepInfo().
		Type(schema.NonNullType(schema.NamedType(rootType.Name))).
		Build()

	var out []StepDescription
	describeSelectionSet(state, rootStep, rootType, operation.SelectionSet, &out)
	return out, nil
}

func describeSelectionSet(state *executionState, parentStep *execution.StepInfo, objectType *schema.Type, selectionSet language.SelectionSet, out *[]StepDescription) {
	for _, collectedField := range collectFields(state, objectType, selectionSet).orderedFields() {
		merged := execution.NewMergedField(collectedField.Fields...)
		if merged.Name() == "__typename" {
			continue
		}
		fieldDef := objectType.GetField(merged.Name())
		if fieldDef == nil {
			continue
		}

		path := parentStep.Path().AppendField(merged.ResultKey())
		args := coerceArgumentValues(state, fieldDef, merged.SingleField().Arguments, path)

		step := execution.NewStepInfo().
			Type(fieldDef.Type).
			FieldDefinition(fieldDef).
			DefiningType(objectType).
			Field(merged).
			Path(path).
			Parent(parentStep).
			Arguments(args).
			Build()

		var argNames []string
		if args.Len() > 0 {
			argNames = args.Names()
		}
		*out = append(*out, StepDescription{
			Path:         step.Path().String(),
			Type:         step.SimplePrint(),
			Field:        merged.ResultKey(),
			DefiningType: objectType.Name,
			NonNull:      step.IsNonNullType(),
			List:         step.IsListType(),
			Arguments:    argNames,
		})

		inner := state.schema.GetType(step.UnwrappedTypeName())
		if inner != nil && (inner.Kind == schema.TypeKindObject || inner.IsAbstract()) {
			sub := mergeSelectionSets(merged.Fields())
			describeSelectionSet(state, step, inner, sub, out)
		}
	}
}
