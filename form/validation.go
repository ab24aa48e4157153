package form

import "fmt"

// Code identifies the kind of problem an Issue reports.
type Code string

const (
	CodeDuplicateID          Code = "duplicate_id"
	CodeUnknownField         Code = "unknown_field"
	CodeSelfReference        Code = "self_reference"
	CodeForwardReference     Code = "forward_reference"
	CodeUnknownOperator      Code = "unknown_operator"
	CodeEmptyConditions      Code = "empty_conditions"
	CodeMissingValue         Code = "missing_value"
	CodeNonNumericValue      Code = "non_numeric_value"
	CodeUnknownOption        Code = "unknown_option"
	CodeMissingTarget        Code = "missing_target"
	CodeBackwardSkip         Code = "backward_skip"
	CodeEmptyFormula         Code = "empty_formula"
	CodeInvalidFormula       Code = "invalid_formula"
	CodeCircularDependency   Code = "circular_dependency"
	CodeUndeclaredDependency Code = "undeclared_dependency"
	CodeStrippedCharacters   Code = "stripped_characters"
	CodeUnknownDisplayType   Code = "unknown_display_type"
	CodeMissingConfig        Code = "missing_config"
	CodeDualConfig           Code = "dual_config"
	CodeMalformedParameter   Code = "malformed_parameter"
	CodeDuplicateParameter   Code = "duplicate_parameter"
	CodeInvalidDefault       Code = "invalid_default"
	CodeReservedName         Code = "reserved_name"
)

// Issue is a single author-time validation finding.
type Issue struct {
	FieldID string `json:"fieldId,omitempty"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.FieldID == "" {
		return fmt.Sprintf("[%s] %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", i.FieldID, i.Code, i.Message)
}

// ValidationResult is the outcome of an author-time check. Errors block saving
// a form, warnings are advisory.
type ValidationResult struct {
	IsValid  bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Reporter accumulates issues and builds a ValidationResult.
type Reporter struct {
	errors   []Issue
	warnings []Issue
}

// Errorf records a blocking issue.
func (r *Reporter) Errorf(fieldID string, code Code, format string, args ...any) {
	r.errors = append(r.errors, Issue{FieldID: fieldID, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Warnf records an advisory issue.
func (r *Reporter) Warnf(fieldID string, code Code, format string, args ...any) {
	r.warnings = append(r.warnings, Issue{FieldID: fieldID, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Result returns the accumulated issues. Slices are never nil.
func (r *Reporter) Result() ValidationResult {
	res := ValidationResult{
		Errors:   append([]Issue{}, r.errors...),
		Warnings: append([]Issue{}, r.warnings...),
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

// Merge combines several results into one.
func Merge(results ...ValidationResult) ValidationResult {
	var r Reporter
	for _, res := range results {
		r.errors = append(r.errors, res.Errors...)
		r.warnings = append(r.warnings, res.Warnings...)
	}
	return r.Result()
}

// HasCode reports whether any error or warning carries code.
func (v ValidationResult) HasCode(code Code) bool {
	for _, i := range v.Errors {
		if i.Code == code {
			return true
		}
	}
	for _, i := range v.Warnings {
		if i.Code == code {
			return true
		}
	}
	return false
}
