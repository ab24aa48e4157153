// Package formlogic evaluates dynamic form logic: conditional visibility and
// skip logic, calculated fields, answer recall and URL prefill. The Evaluate
// and Validate functions are one-shot helpers; NewEvaluator builds a reusable
// Evaluator that runs every pass at once.
package formlogic

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-formlogic/engine"
	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/form/loader"
	"github.com/robbyt/go-formlogic/form/schema"
	"github.com/robbyt/go-formlogic/options"
	"github.com/robbyt/go-formlogic/resolvers/calculation"
	"github.com/robbyt/go-formlogic/resolvers/prefill"
	"github.com/robbyt/go-formlogic/resolvers/recall"
	"github.com/robbyt/go-formlogic/resolvers/visibility"
)

// handler is the log handler for the one-shot helpers.
func handler() slog.Handler {
	return slog.Default().Handler()
}

// EvaluateVisibility returns the visible and hidden fields and the fired skip
// targets for responses.
func EvaluateVisibility(fields []form.Field, responses form.Responses) visibility.Result {
	return visibility.New(handler()).Resolve(fields, responses)
}

// EvaluateCalculations returns the formatted value of every resolvable formula.
func EvaluateCalculations(fields []form.Field, responses form.Responses) map[string]form.Value {
	return calculation.New(handler()).Resolve(fields, responses).Values
}

// EvaluateRecall returns the recalled value of every answer recall field.
func EvaluateRecall(fields []form.Field, responses form.Responses) map[string]form.Value {
	return recall.New(handler()).Resolve(fields, responses).Values
}

// EvaluatePrefill returns the initial value of every prefill field. params
// holds raw, still URL-encoded query values.
func EvaluatePrefill(fields []form.Field, params map[string]string) map[string]form.Value {
	return prefill.New(handler()).Resolve(fields, params).Values
}

// EvaluatePrefillQuery is EvaluatePrefill over a raw query string or full URL.
func EvaluatePrefillQuery(fields []form.Field, rawQuery string) map[string]form.Value {
	return prefill.New(handler()).ResolveQuery(fields, rawQuery).Values
}

// ValidateConditionalLogic checks show and skip conditions.
func ValidateConditionalLogic(fields []form.Field) form.ValidationResult {
	return visibility.Validate(fields)
}

// ValidateCalculations checks formulas, dependencies and cycles.
func ValidateCalculations(fields []form.Field) form.ValidationResult {
	return calculation.Validate(fields)
}

// ValidateAnswerRecall checks recall sources and templates.
func ValidateAnswerRecall(fields []form.Field) form.ValidationResult {
	return recall.Validate(fields)
}

// ValidatePrefillConfig checks prefill parameters and defaults.
func ValidatePrefillConfig(fields []form.Field) form.ValidationResult {
	return prefill.Validate(fields)
}

// Validate runs every check and reports repeated field ids.
func Validate(fields []form.Field) form.ValidationResult {
	var rep form.Reporter
	for _, id := range form.DuplicateIDs(fields) {
		rep.Errorf(id, form.CodeDuplicateID, "field id %q is used more than once", id)
	}
	return form.Merge(
		rep.Result(),
		ValidateConditionalLogic(fields),
		ValidateCalculations(fields),
		ValidateAnswerRecall(fields),
		ValidatePrefillConfig(fields),
	)
}

// DetectCircularDependencies returns the first dependency cycle among
// calculated fields, closed on its starting id, or nil.
func DetectCircularDependencies(fields []form.Field) []string {
	return calculation.DetectCircularDependencies(fields)
}

// GeneratePrefillURL appends the prefill parameters of fields carrying a
// value in values to base.
func GeneratePrefillURL(base string, fields []form.Field, values form.Responses) (string, error) {
	return prefill.GenerateURL(base, fields, values)
}

// NewEvaluator creates an Evaluator for fields.
func NewEvaluator(fields []form.Field, opts ...options.Option) (*engine.Evaluator, error) {
	cfg, err := options.New(opts...)
	if err != nil {
		return nil, err
	}
	return engine.New(fields, cfg)
}

// LoadDocument reads a form document from a path, file:// URL, inline JSON
// or YAML, a byte slice, an io.Reader or a loader.Loader. The content is
// checked against the document schema before decoding.
func LoadDocument(input any) (*form.Document, error) {
	l, err := loader.InferLoader(input)
	if err != nil {
		return nil, err
	}
	content, err := loader.ReadAll(l)
	if err != nil {
		return nil, err
	}
	if err := schema.Check(content); err != nil {
		return nil, fmt.Errorf("%s: %w", l.GetSourceURL(), err)
	}
	return form.ParseDocument(content)
}

// FromDocument loads a form document and creates an Evaluator for it.
func FromDocument(input any, opts ...options.Option) (*engine.Evaluator, error) {
	doc, err := LoadDocument(input)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(doc.Fields, opts...)
}
