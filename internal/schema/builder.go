package schema

import (
	"fmt"
	"sort"
	"strconv"

	language "github.com/SammoMichael/graphstep/internal/language"
)

// BuildFromSDL parses a GraphQL SDL document and builds the executable schema.
// Root operation types default to Query/Mutation/Subscription unless a schema
// definition overrides them.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, fmt.Errorf("parse sdl: %w", err)
	}

	s := &Schema{
		Types:      make(map[string]*Type),
		Directives: make(map[string]*Directive),
	}
	// Builtins
	s.Types[stringType.Name] = stringType
	s.Types[intType.Name] = intType
	s.Types[floatType.Name] = floatType
	s.Types[booleanType.Name] = booleanType
	s.Types[idType.Name] = idType
	s.Directives[includeDirective.Name] = includeDirective
	s.Directives[skipDirective.Name] = skipDirective
	s.Directives[asyncDirective.Name] = asyncDirective

	for _, def := range doc.Definitions {
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		if _, exists := s.Types[t.Name]; exists {
			return nil, fmt.Errorf("duplicate type %q", t.Name)
		}
		s.Types[t.Name] = t
	}
	for _, dir := range doc.Directives {
		d := &Directive{
			Name:         dir.Name,
			Description:  dir.Description,
			IsRepeatable: dir.IsRepeatable,
		}
		for _, loc := range dir.Locations {
			d.Locations = append(d.Locations, string(loc))
		}
		for _, arg := range dir.Arguments {
			d.Arguments = append(d.Arguments, buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue, arg.Directives))
		}
		s.Directives[d.Name] = d
	}

	// Root operation types
	s.QueryType = "Query"
	s.MutationType = "Mutation"
	s.SubscriptionType = "Subscription"
	for _, schemaDef := range doc.Schema {
		s.Description = schemaDef.Description
		for _, opType := range schemaDef.OperationTypes {
			switch opType.Operation {
			case language.Query:
				s.QueryType = opType.Type
			case language.Mutation:
				s.MutationType = opType.Type
			case language.Subscription:
				s.SubscriptionType = opType.Type
			}
		}
	}
	if s.GetQueryType() == nil {
		return nil, fmt.Errorf("root query type %q is not defined", s.QueryType)
	}

	linkPossibleTypes(s)
	return s, nil
}

func buildType(def *language.Definition) (*Type, error) {
	t := &Type{
		Name:        def.Name,
		Description: def.Description,
	}
	switch def.Kind {
	case language.Object:
		t.Kind = TypeKindObject
	case language.Interface:
		t.Kind = TypeKindInterface
	case language.Union:
		t.Kind = TypeKindUnion
	case language.Scalar:
		t.Kind = TypeKindScalar
	case language.Enum:
		t.Kind = TypeKindEnum
	case language.InputObject:
		t.Kind = TypeKindInputObject
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for %q", def.Kind, def.Name)
	}

	switch t.Kind {
	case TypeKindObject, TypeKindInterface:
		t.Interfaces = append(t.Interfaces, def.Interfaces...)
		for _, fd := range def.Fields {
			t.Fields = append(t.Fields, buildField(fd))
		}
	case TypeKindUnion:
		t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	case TypeKindEnum:
		for _, v := range def.EnumValues {
			ev := &EnumValue{Name: v.Name, Description: v.Description}
			ev.IsDeprecated, ev.DeprecationReason = deprecation(v.Directives)
			t.EnumValues = append(t.EnumValues, ev)
		}
	case TypeKindInputObject:
		for _, fd := range def.Fields {
			t.InputFields = append(t.InputFields, buildInputValue(fd.Name, fd.Description, fd.Type, fd.DefaultValue, fd.Directives))
		}
	case TypeKindScalar:
		if d := def.Directives.ForName("specifiedBy"); d != nil {
			if arg := d.Arguments.ForName("url"); arg != nil && arg.Value != nil {
				url := arg.Value.Raw
				t.SpecifiedByURL = &url
			}
		}
	}
	return t, nil
}

func buildField(fd *language.FieldDefinition) *Field {
	f := &Field{
		Name:        fd.Name,
		Description: fd.Description,
		Type:        buildTypeRef(fd.Type),
		Async:       fd.Directives.ForName("async") != nil,
	}
	f.IsDeprecated, f.DeprecationReason = deprecation(fd.Directives)
	for _, arg := range fd.Arguments {
		f.Arguments = append(f.Arguments, buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue, arg.Directives))
	}
	return f
}

func buildInputValue(name, description string, t *language.Type, defaultValue *language.Value, directives language.DirectiveList) *InputValue {
	in := &InputValue{
		Name:        name,
		Description: description,
		Type:        buildTypeRef(t),
	}
	if defaultValue != nil {
		in.DefaultValue = constValueToGo(defaultValue)
	}
	in.IsDeprecated, in.DeprecationReason = deprecation(directives)
	return in
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(buildTypeRef(t.Elem))
}

func deprecation(directives language.DirectiveList) (bool, string) {
	d := directives.ForName("deprecated")
	if d == nil {
		return false, ""
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return true, arg.Value.Raw
	}
	return true, ""
}

// linkPossibleTypes records each object type as a possible type of the
// interfaces it implements. Sorted for deterministic rendering.
func linkPossibleTypes(s *Schema) {
	for _, t := range s.Types {
		if t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			iface := s.Types[ifaceName]
			if iface == nil || iface.Kind != TypeKindInterface {
				continue
			}
			iface.PossibleTypes = append(iface.PossibleTypes, t.Name)
		}
	}
	for _, t := range s.Types {
		if t.Kind == TypeKindInterface {
			sort.Strings(t.PossibleTypes)
		}
	}
}

// constValueToGo converts a constant AST value (no variables) to a Go value.
func constValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = constValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = constValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}
