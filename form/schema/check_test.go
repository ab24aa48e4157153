package schema

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-formlogic/form"
)

const validYAML = `
id: signup
title: Sign up
fields:
  - id: name
    type: text
    placeholder: Your name
  - id: age
    type: number
    order: 2
    validation:
      min: 0
      max: 120.5
  - id: guardian
    type: text
    conditional:
      show:
        enabled: true
        conditions:
          - fieldId: age
            operator: less_than
            value: 18
          - fieldId: name
            operator: is_empty
            value: null
            logicalOperator: or
      skip:
        enabled: false
        conditions: []
        targetFieldId: age
  - id: total
    type: number
    calculation:
      enabled: true
      formula: "{{age}} * 2"
      dependencies: [age]
      displayType: decimal
  - id: greeting
    type: text
    answerRecall:
      enabled: true
      template: "Hi {{name}}"
  - id: source
    type: dropdown
    options: [Ads, Friend]
    prefill:
      enabled: true
      urlParameter: src
      defaultValue: Ads
`

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "yaml document", content: validYAML},
		{name: "json document", content: `{"id":"f","fields":[{"id":"a","type":"text"},{"id":"b","type":"checkbox","options":["x","y"]}]}`},
		{name: "bare json list", content: `[{"id":"a","type":"email"}]`},
		{name: "bare yaml list", content: "- id: a\n  type: rating\n"},
		{name: "unknown field type is structurally fine", content: `[{"id":"a","type":"signature"}]`},
		{name: "empty", content: "  \n", wantErr: form.ErrDocumentEmpty},
		{name: "malformed", content: `{"fields": [`, wantErr: form.ErrDocumentInvalid},
		{name: "numeric id", content: `[{"id":12,"type":"text"}]`, wantErr: ErrSchemaViolation},
		{name: "empty id", content: `[{"id":"","type":"text"}]`, wantErr: ErrSchemaViolation},
		{name: "missing type", content: `[{"id":"a"}]`, wantErr: ErrSchemaViolation},
		{name: "enabled not bool", content: `[{"id":"a","type":"number","calculation":{"enabled":"yes","formula":"1"}}]`, wantErr: ErrSchemaViolation},
		{name: "options not strings", content: `[{"id":"a","type":"radio","options":[{"label":"x"}]}]`, wantErr: ErrSchemaViolation},
		{name: "condition without operator", content: `[{"id":"a","type":"text","conditional":{"show":{"enabled":true,"conditions":[{"fieldId":"b"}]}}}]`, wantErr: ErrSchemaViolation},
		{name: "skip without target", content: `[{"id":"a","type":"text","conditional":{"skip":{"enabled":true,"conditions":[]}}}]`, wantErr: ErrSchemaViolation},
		{name: "fields not a list", content: `{"fields": "a"}`, wantErr: ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Check([]byte(tt.content))
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChecker_Concurrent(t *testing.T) {
	t.Parallel()

	c, err := NewChecker()
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = c.Check([]byte(validYAML))
			} else {
				errs[i] = c.Check([]byte(`[{"id":1}]`))
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 0 {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrSchemaViolation)
		}
	}
}

func TestCheck_AgreesWithDecoder(t *testing.T) {
	t.Parallel()

	require.NoError(t, Check([]byte(validYAML)))
	doc, err := form.ParseDocument([]byte(validYAML))
	require.NoError(t, err)
	assert.Len(t, doc.Fields, 6)
}
