package executor

import (
	"context"
	"fmt"
	"reflect"
	"time"

	eventbus "github.com/SammoMichael/graphstep/internal/eventbus"
	events "github.com/SammoMichael/graphstep/internal/events"
	execution "github.com/SammoMichael/graphstep/internal/execution"
	language "github.com/SammoMichael/graphstep/internal/language"
	schema "github.com/SammoMichael/graphstep/internal/schema"
)

type NodeID uint64

// executionState holds the state during query execution
type executionState struct {
	runtime        Runtime
	schema         *schema.Schema
	document       *language.QueryDocument
	variableValues map[string]any
	context        context.Context
	asyncTaskGroup []asyncTask
	errors         []GraphQLError
	// Store async tasks by ID for completion
	asyncTaskInfo map[NodeID]asyncTask
	// simple incremental id generator
	nextID uint64
	// prefixes of paths that have been nullified (tombstoned)
	nullifiedPrefix map[string]struct{}
	responseRoot    map[string]any
	// set once a Non-Null violation bubbled all the way to the root
	dataNulled bool
}

// asyncTask represents a pending async field resolution
type asyncTask struct {
	ID   NodeID
	Task AsyncResolveTask
	Step *execution.StepInfo
}

type asyncPending struct{}

type Executor struct {
	runtime Runtime
	schema  *schema.Schema
}

func NewExecutor(runtime Runtime, schema *schema.Schema) *Executor {
	return &Executor{runtime: runtime, schema: schema}
}

func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	initialValue any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	rootType, err := rootTypeForOperation(e.schema, operation)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	started := time.Now()
	eventbus.Publish(ctx, events.ExecutionStart{
		OperationName: operation.Name,
		OperationType: string(operation.Operation),
	})

	state := &executionState{
		runtime:         e.runtime,
		schema:          e.schema,
		document:        document,
		variableValues:  coercedVariableValues,
		context:         ctx,
		asyncTaskGroup:  []asyncTask{},
		errors:          []GraphQLError{},
		asyncTaskInfo:   make(map[NodeID]asyncTask),
		nextID:          1,
		nullifiedPrefix: make(map[string]struct{}),
		responseRoot:    make(map[string]any),
	}

	rootStep := execution.NewStepInfo().
		Type(schema.NonNullType(schema.NamedType(rootType.Name))).
		Build()

	// Root selection set: sync immediate expansion, async queued
	rootResult := executeSelectionSet(state, rootStep, rootType, operation.SelectionSet, initialValue)
	if rootResult == nil {
		state.dataNulled = true
	}
	for k, v := range rootResult {
		state.responseRoot[k] = v
	}

	// Depth-wise batch loop
	for len(state.asyncTaskGroup) > 0 && !state.dataNulled {
		filtered, results := flushAsyncTasks(state)
		for i, r := range results {
			completeAsyncField(state, filtered[i], r)
		}
	}

	var data any
	if !state.dataNulled {
		data = state.responseRoot
	}

	eventbus.Publish(ctx, events.ExecutionFinish{
		OperationName: operation.Name,
		OperationType: string(operation.Operation),
		ErrorCount:    len(state.errors),
		DataNulled:    state.dataNulled,
		Duration:      time.Since(started),
	})

	return &ExecutionResult{Data: data, Errors: state.errors}
}

func rootTypeForOperation(s *schema.Schema, operation *language.OperationDefinition) (*schema.Type, error) {
	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = s.GetQueryType()
	case language.Mutation:
		rootType = s.GetMutationType()
	case language.Subscription:
		rootType = s.GetSubscriptionType()
	default:
		return nil, fmt.Errorf("unsupported operation type: %s", operation.Operation)
	}
	if rootType == nil {
		return nil, fmt.Errorf("root type not found for %s operation", operation.Operation)
	}
	return rootType, nil
}

// executeSelectionSet executes a selection set without flushing. It returns
// nil when a Non-Null child produced null, which bubbles the null to the
// caller's position.
func executeSelectionSet(state *executionState, parentStep *execution.StepInfo, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any) map[string]any {
	groupedFields := collectFields(state, objectType, selectionSet)
	resultMap := make(map[string]any)

	for _, collectedField := range groupedFields.orderedFields() {
		responseName := collectedField.ResponseName
		merged := execution.NewMergedField(collectedField.Fields...)

		fieldResult, step := executeFieldGroup(state, parentStep, objectType, objectValue, merged)
		if step == nil {
			// __typename resolved inline; unknown fields were already recorded
			if merged.Name() == "__typename" {
				resultMap[responseName] = fieldResult
			}
			continue
		}

		// Non-null child produced null: bubble to the parent position
		if step.IsNonNullType() && isNullish(fieldResult) {
			return nil
		}

		// For nullable fields, coerce typed-nil to interface-nil
		if isNullish(fieldResult) {
			resultMap[responseName] = nil
		} else {
			resultMap[responseName] = fieldResult
		}
	}

	return resultMap
}

// executeFieldGroup builds the step record for one merged field and either
// resolves it synchronously or queues an async task. The returned step is nil
// for meta fields and unknown fields.
func executeFieldGroup(state *executionState, parentStep *execution.StepInfo, objectType *schema.Type, objectValue any, merged execution.MergedField) (any, *execution.StepInfo) {
	fieldName := merged.Name()

	// Handle __typename meta field
	if fieldName == "__typename" {
		return objectType.Name, nil
	}

	path := parentStep.Path().AppendField(merged.ResultKey())

	fieldDef := objectType.GetField(fieldName)
	if fieldDef == nil {
		state.addError(fmt.Sprintf("Cannot query field '%s' on type '%s'", fieldName, objectType.Name), path)
		return nil, nil
	}

	argumentValues := coerceArgumentValues(state, fieldDef, merged.SingleField().Arguments, path)

	step := execution.NewStepInfo().
		Type(fieldDef.Type).
		FieldDefinition(fieldDef).
		DefiningType(objectType).
		Field(merged).
		Path(path).
		Parent(parentStep).
		Arguments(argumentValues).
		Build()

	if !fieldDef.Async {
		resolvedValue := resolveSyncField(state, step, objectValue)
		return completeValue(state, step, resolvedValue), step
	}

	id := NodeID(state.nextID)
	state.nextID++
	at := asyncTask{
		ID: id,
		Task: AsyncResolveTask{
			ObjectType: objectType.Name,
			Field:      fieldName,
			Source:     objectValue,
			Args:       argumentValues,
		},
		Step: step,
	}
	state.asyncTaskGroup = append(state.asyncTaskGroup, at)
	state.asyncTaskInfo[id] = at
	return asyncPending{}, step
}

// flushAsyncTasks flushes tasks and returns results (filtered by tombstones)
func flushAsyncTasks(state *executionState) ([]asyncTask, []AsyncResolveResult) {
	// Filter out tasks under nullified prefixes
	filtered := make([]asyncTask, 0, len(state.asyncTaskGroup))
	for _, at := range state.asyncTaskGroup {
		if state.dataNulled || state.hasNullifiedPrefix(at.Step.Path()) {
			// Drop this task; also forget it for completion
			delete(state.asyncTaskInfo, at.ID)
			continue
		}
		filtered = append(filtered, at)
	}

	// Extract tasks
	tasks := make([]AsyncResolveTask, len(filtered))
	for i, at := range filtered {
		tasks[i] = at.Task
	}

	// Clear group before executing
	state.asyncTaskGroup = nil

	if len(tasks) == 0 {
		return filtered, nil
	}

	// Execute batch
	results := state.runtime.BatchResolveAsync(state.context, tasks)
	return filtered, results
}

// completeAsyncField completes a single async result, with non-null propagation and pruning
func completeAsyncField(state *executionState, at asyncTask, res AsyncResolveResult) {
	delete(state.asyncTaskInfo, at.ID)

	path := at.Step.Path()
	// If this path is already nullified by an ancestor, ignore
	if state.dataNulled || state.hasNullifiedPrefix(path) {
		return
	}

	// Handle error case first
	if res.Error != nil {
		state.addError(res.Error.Error(), path)
		if at.Step.IsNonNullType() {
			state.bubbleNull(at.Step)
			return
		}
		setValueAtPath(state.responseRoot, path, nil)
		return
	}

	completed := completeValue(state, at.Step, res.Value)

	// If non-null type but completion yielded nullish -> propagate
	if at.Step.IsNonNullType() && isNullish(completed) {
		state.bubbleNull(at.Step)
		return
	}

	// Normal write; coerce typed-nil to interface nil
	if isNullish(completed) {
		setValueAtPath(state.responseRoot, path, nil)
	} else {
		setValueAtPath(state.responseRoot, path, completed)
	}
}

// bubbleNull walks the ancestor chain of a violating Non-Null step and writes
// null at the nearest nullable ancestor position. When every ancestor up to
// the root is Non-Null, the whole response data becomes null.
func (state *executionState) bubbleNull(step *execution.StepInfo) {
	current := step
	for {
		parent := current.Parent()
		if parent == nil || parent.Path().IsRoot() {
			state.dataNulled = true
			eventbus.Publish(state.context, events.NullPropagated{
				FieldPath: step.Path().String(),
			})
			return
		}
		if !parent.IsNonNullType() {
			setValueAtPath(state.responseRoot, parent.Path(), nil)
			state.markNullifiedPrefix(parent.Path())
			eventbus.Publish(state.context, events.NullPropagated{
				FieldPath:    step.Path().String(),
				AncestorPath: parent.Path().String(),
			})
			return
		}
		current = parent
	}
}

// completeValue completes a value for the given step
func completeValue(state *executionState, step *execution.StepInfo, result any) any {
	if step.IsNonNullType() {
		if isNullish(result) {
			if !state.hasErrorAtPath(step.Path()) {
				state.addError(fmt.Sprintf("Cannot return null for non-nullable field %s", step.Path()), step.Path())
			}
			return nil
		}
	} else if isNullish(result) {
		return nil
	}

	completed := completeWrappedValue(state, step, result)
	if step.IsNonNullType() && isNullish(completed) {
		// Error already recorded by inner completion; propagate only
		return nil
	}
	return completed
}

// completeWrappedValue completes the step's value once null handling is done.
func completeWrappedValue(state *executionState, step *execution.StepInfo, result any) any {
	if step.IsListType() {
		return completeListValue(state, step, result)
	}

	namedType := step.UnwrappedTypeName()
	typeObj := state.schema.GetType(namedType)
	if typeObj == nil {
		state.addError(fmt.Sprintf("Unknown type: %s", namedType), step.Path())
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := state.runtime.SerializeLeafValue(state.context, namedType, result)
		if err != nil {
			state.addError(err.Error(), step.Path())
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return completeObjectValue(state, step, typeObj, result)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return completeAbstractValue(state, step, typeObj, result)
	default:
		state.addError(fmt.Sprintf("Cannot complete value of unexpected type: %s", typeObj.Kind), step.Path())
		return nil
	}
}

// completeListValue completes a list value, deriving one element step per item
func completeListValue(state *executionState, step *execution.StepInfo, result any) any {
	var items []any
	if direct, ok := result.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice {
			state.addError(fmt.Sprintf("Expected list value, got %T", result), step.Path())
			return nil
		}
		items = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}

	completed := make([]any, len(items))
	for i, item := range items {
		elemStep := execution.NewStepForListElement(step, i)
		v := completeValue(state, elemStep, item)
		if elemStep.IsNonNullType() && isNullish(v) {
			// Propagate null to the list position; error already recorded by element completion
			return nil
		}
		completed[i] = v
	}
	return completed
}

func completeObjectValue(state *executionState, step *execution.StepInfo, objectType *schema.Type, result any) any {
	sub := mergeSelectionSets(step.Field().Fields())
	return executeSelectionSet(state, step, objectType, sub, result)
}

// completeAbstractValue resolves the concrete object type at runtime and
// narrows the step's type while preserving its non-null wrapper.
func completeAbstractValue(state *executionState, step *execution.StepInfo, abstractType *schema.Type, result any) any {
	typeName, err := state.runtime.ResolveType(state.context, abstractType.Name, result)
	if err != nil {
		state.addError(err.Error(), step.Path())
		return nil
	}
	objectType := state.schema.GetType(typeName)
	if objectType == nil || objectType.Kind != schema.TypeKindObject {
		state.addError(fmt.Sprintf("Abstract type %s must resolve to an Object type at runtime. Got: %s", abstractType.Name, typeName), step.Path())
		return nil
	}
	if !isPossibleType(abstractType, typeName) {
		state.addError(fmt.Sprintf("Runtime type %s is not a possible type for %s", typeName, abstractType.Name), step.Path())
		return nil
	}
	narrowed := step.ChangeTypeWithPreservedNonNull(schema.NamedType(typeName))
	return completeObjectValue(state, narrowed, objectType, result)
}

func isPossibleType(abstractType *schema.Type, typeName string) bool {
	for _, pt := range abstractType.PossibleTypes {
		if pt == typeName {
			return true
		}
	}
	return false
}

// Prefix tombstone helpers
func (s *executionState) markNullifiedPrefix(p execution.ResultPath) {
	key := p.String()
	if key != "" {
		s.nullifiedPrefix[key] = struct{}{}
	}
}

func (s *executionState) hasNullifiedPrefix(p execution.ResultPath) bool {
	if len(s.nullifiedPrefix) == 0 {
		return false
	}
	// Build prefixes progressively
	cur := execution.RootPath()
	for _, seg := range p.Segments() {
		if seg.IsIndex() {
			cur = cur.AppendIndex(seg.Index())
		} else {
			cur = cur.AppendField(seg.Name())
		}
		if _, ok := s.nullifiedPrefix[cur.String()]; ok {
			return true
		}
	}
	return false
}

// getOperation retrieves the operation from the document
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		for _, op := range document.Operations {
			return op
		}
	}
	for _, op := range document.Operations {
		if op.Name == operationName {
			return op
		}
	}
	return nil
}

func typeRefFromAST(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return schema.NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return schema.ListType(typeRefFromAST(t.Elem))
	}
	return nil
}

// Helper function to add an error to the execution state
func (state *executionState) addError(message string, path execution.ResultPath) {
	state.errors = append(state.errors, GraphQLError{Message: message, Path: path})
}

// hasErrorAtPath reports whether an error with the given path already exists.
func (state *executionState) hasErrorAtPath(path execution.ResultPath) bool {
	for _, err := range state.errors {
		if err.Path.Equal(path) {
			return true
		}
	}
	return false
}

// resolveSyncField resolves a field synchronously
func resolveSyncField(state *executionState, step *execution.StepInfo, source any) any {
	value, err := state.runtime.ResolveSync(state.context, step.DefiningType().Name, step.Field().Name(), source, step.Arguments())
	if err != nil {
		state.addError(err.Error(), step.Path())
		return nil
	}
	return value
}

// Helper function to set value at a specific path in response tree
func setValueAtPath(responseRoot map[string]any, path execution.ResultPath, value any) {
	segments := path.Segments()
	if len(segments) == 0 {
		return
	}
	if len(segments) == 1 && !segments[0].IsIndex() {
		responseRoot[segments[0].Name()] = value
		return
	}
	current := any(responseRoot)
	for _, seg := range segments[:len(segments)-1] {
		if seg.IsIndex() {
			slice, ok := current.([]any)
			if !ok {
				return
			}
			i := seg.Index()
			if i >= len(slice) {
				return
			}
			if slice[i] == nil {
				slice[i] = make(map[string]any)
			}
			current = slice[i]
		} else {
			m, ok := current.(map[string]any)
			if !ok {
				return
			}
			next, exists := m[seg.Name()]
			if !exists {
				next = make(map[string]any)
				m[seg.Name()] = next
			}
			current = next
		}
	}
	last := segments[len(segments)-1]
	if last.IsIndex() {
		if slice, ok := current.([]any); ok && last.Index() < len(slice) {
			slice[last.Index()] = value
		}
	} else {
		if m, ok := current.(map[string]any); ok {
			m[last.Name()] = value
		}
	}
}

// mergeSelectionSets merges selection sets from multiple fields
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// isNullish returns true for nil interfaces and typed nils (map, slice, ptr, interface)
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
