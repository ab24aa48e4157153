package form

import "strings"

// FieldType determines how a field's value is coerced and compared.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeNumber   FieldType = "number"
	TypeEmail    FieldType = "email"
	TypePhone    FieldType = "phone"
	TypeURL      FieldType = "url"
	TypeDate     FieldType = "date"
	TypeTime     FieldType = "time"
	TypeDropdown FieldType = "dropdown"
	TypeRadio    FieldType = "radio"
	TypeCheckbox FieldType = "checkbox"
	TypeRating   FieldType = "rating"
	TypeScale    FieldType = "scale"
	TypeFile     FieldType = "file"
)

// FieldTypes lists every supported field type in a stable order.
var FieldTypes = []FieldType{
	TypeText, TypeTextarea, TypeNumber, TypeEmail, TypePhone, TypeURL, TypeDate,
	TypeTime, TypeDropdown, TypeRadio, TypeCheckbox, TypeRating, TypeScale, TypeFile,
}

// Known reports whether t is one of FieldTypes.
func (t FieldType) Known() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsChoice reports whether the field offers a fixed list of options.
func (t FieldType) IsChoice() bool {
	return t == TypeDropdown || t == TypeRadio || t == TypeCheckbox
}

// IsSingleChoice reports whether exactly one option can be selected.
func (t FieldType) IsSingleChoice() bool {
	return t == TypeDropdown || t == TypeRadio
}

// IsRange reports whether the field is a bounded numeric scale.
func (t FieldType) IsRange() bool {
	return t == TypeRating || t == TypeScale
}

// Operator is a comparison used by a Condition.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// Operators lists every supported comparison operator.
var Operators = []Operator{
	OpEquals, OpNotEquals, OpContains, OpNotContains,
	OpGreaterThan, OpLessThan, OpIsEmpty, OpIsNotEmpty,
}

// Valid reports whether op is a supported operator.
func (op Operator) Valid() bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

// RequiresValue reports whether the operator compares against Condition.Value.
func (op Operator) RequiresValue() bool {
	return op != OpIsEmpty && op != OpIsNotEmpty
}

// IsNumeric reports whether the operator compares numbers.
func (op Operator) IsNumeric() bool {
	return op == OpGreaterThan || op == OpLessThan
}

// LogicalOperator joins a condition to the result of the conditions before it.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

// Normalize returns LogicalOr for any spelling of "or" and LogicalAnd otherwise.
func (l LogicalOperator) Normalize() LogicalOperator {
	if strings.EqualFold(strings.TrimSpace(string(l)), string(LogicalOr)) {
		return LogicalOr
	}
	return LogicalAnd
}

// DisplayType controls how a calculated number is presented.
type DisplayType string

const (
	DisplayNumber     DisplayType = "number"
	DisplayDecimal    DisplayType = "decimal"
	DisplayCurrency   DisplayType = "currency"
	DisplayPercentage DisplayType = "percentage"
)

// Valid reports whether d is a known display type. The empty string is valid
// and means DisplayNumber.
func (d DisplayType) Valid() bool {
	switch d {
	case "", DisplayNumber, DisplayDecimal, DisplayCurrency, DisplayPercentage:
		return true
	}
	return false
}
