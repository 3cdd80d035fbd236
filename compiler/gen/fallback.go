package gen

import (
	"reflect"
	"time"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"

	"github.com/davrux/sideload/resource"
	"github.com/davrux/sideload/tree"
)

// fallbackReflector reflects example values inline, without $ref
// indirection, so the type and format can be lifted into a fragment.
var fallbackReflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// instanceFragment infers a primitive fragment from the literal value of
// the attribute on the definition's example instance. It reports false
// when no example was supplied, the attribute has no value, or the value's
// type yields no usable schema.
func instanceFragment(def *resource.Definition, attr string) (tree.Node, bool) {
	v := exampleAttribute(def.ExampleValue(), attr)
	if v == nil {
		return nil, false
	}
	return fragmentForValue(v)
}

// exampleAttribute extracts the attribute's value from an example
// instance. Maps are indexed by the attribute name; structs are matched on
// the camelized field name ("created_at" -> "CreatedAt").
func exampleAttribute(example any, attr string) any {
	if example == nil {
		return nil
	}
	if m, ok := example.(map[string]any); ok {
		return m[attr]
	}
	rv := reflect.ValueOf(example)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	field := rv.FieldByName(inflect.Camelize(attr))
	if !field.IsValid() || !field.CanInterface() {
		return nil
	}
	return field.Interface()
}

// fragmentForValue builds a {type, format?} fragment for a literal value.
func fragmentForValue(v any) (tree.Node, bool) {
	switch v.(type) {
	case uuid.UUID:
		return primitive("string", "uuid"), true
	case time.Time:
		return primitive("string", "date-time"), true
	}
	s := fallbackReflector.ReflectFromType(reflect.TypeOf(v))
	if s == nil || s.Type == "" {
		return nil, false
	}
	return primitive(s.Type, s.Format), true
}
