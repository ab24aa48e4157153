package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/robbyt/go-formlogic/form"
)

// SchemaID is the $id of the published JSON Schema.
const SchemaID = "https://github.com/robbyt/go-formlogic/form-document.schema.json"

var (
	valueType       = reflect.TypeFor[form.Value]()
	fieldTypeType   = reflect.TypeFor[form.FieldType]()
	operatorType    = reflect.TypeFor[form.Operator]()
	logicalType     = reflect.TypeFor[form.LogicalOperator]()
	displayTypeType = reflect.TypeFor[form.DisplayType]()
)

// JSONSchema reflects form.Document into a JSON Schema. Field types,
// operators and display types are listed as enums.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapType,
	}
	s := r.Reflect(&form.Document{})
	s.ID = SchemaID
	s.Title = "Form document"
	return s
}

// MarshalJSONSchema renders JSONSchema as indented JSON.
func MarshalJSONSchema() ([]byte, error) {
	return json.MarshalIndent(JSONSchema(), "", "  ")
}

func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case valueType:
		return &jsonschema.Schema{
			Description: "A string, number, boolean, list of strings, or null.",
		}
	case fieldTypeType:
		return enum(form.FieldTypes)
	case operatorType:
		return enum(form.Operators)
	case logicalType:
		return enum([]form.LogicalOperator{form.LogicalAnd, form.LogicalOr})
	case displayTypeType:
		return enum([]form.DisplayType{
			form.DisplayNumber, form.DisplayDecimal, form.DisplayCurrency, form.DisplayPercentage,
		})
	}
	return nil
}

func enum[T ~string](values []T) *jsonschema.Schema {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Enum: out}
}
