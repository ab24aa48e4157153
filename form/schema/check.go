// Package schema checks the shape of form documents before they are decoded
// and publishes a JSON Schema for authoring tools.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-formlogic/form"
)

//go:embed document.cue
var documentSchema string

// Checker validates raw documents against the CUE definition of a form.
// A Checker is safe for concurrent use.
type Checker struct {
	mu       sync.Mutex
	ctx      *cue.Context
	document cue.Value
	fields   cue.Value
}

// NewChecker compiles the form schema.
func NewChecker() (*Checker, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(documentSchema, cue.Filename("document.cue"))
	if v.Err() != nil {
		return nil, fmt.Errorf("compile form schema: %w", v.Err())
	}
	return &Checker{
		ctx:      ctx,
		document: v.LookupPath(cue.ParsePath("#Document")),
		fields:   v.LookupPath(cue.ParsePath("#Fields")),
	}, nil
}

// Check reports whether content, JSON or YAML, has the shape of a form
// document or a bare list of fields. Unknown keys are allowed.
func (c *Checker) Check(content []byte) error {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return form.ErrDocumentEmpty
	}

	// YAML is a superset of JSON, so one decoder reads both formats.
	var raw any
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("%w: %w", form.ErrDocumentInvalid, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.document
	if _, isList := raw.([]any); isList {
		def = c.fields
	}
	v := c.ctx.Encode(raw)
	if v.Err() != nil {
		return fmt.Errorf("%w: %w", form.ErrDocumentInvalid, v.Err())
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	return nil
}

var (
	defaultChecker     *Checker
	defaultCheckerErr  error
	defaultCheckerOnce sync.Once
)

// Check validates content with a shared Checker.
func Check(content []byte) error {
	defaultCheckerOnce.Do(func() {
		defaultChecker, defaultCheckerErr = NewChecker()
	})
	if defaultCheckerErr != nil {
		return defaultCheckerErr
	}
	return defaultChecker.Check(content)
}
