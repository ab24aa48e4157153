package form

// Field is one form question or element together with its dynamic logic.
type Field struct {
	ID       string    `json:"id"                 yaml:"id"   jsonschema:"required,minLength=1"`
	Type     FieldType `json:"type"               yaml:"type" jsonschema:"required"`
	Label    string    `json:"label,omitempty"    yaml:"label,omitempty"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`

	// Order is the field's position in the form. Resolvers always read fields
	// through Ordered, never by slice position.
	Order int `json:"order" yaml:"order"`

	Options    []string    `json:"options,omitempty"    yaml:"options,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`

	Conditional  *Conditional  `json:"conditional,omitempty"  yaml:"conditional,omitempty"`
	Calculation  *Calculation  `json:"calculation,omitempty"  yaml:"calculation,omitempty"`
	AnswerRecall *AnswerRecall `json:"answerRecall,omitempty" yaml:"answerRecall,omitempty"`
	Prefill      *Prefill      `json:"prefill,omitempty"      yaml:"prefill,omitempty"`
}

// Validation holds numeric bounds for rating and scale fields.
type Validation struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Conditional groups the visibility and skip logic of a field.
type Conditional struct {
	Show *ConditionGroup `json:"show,omitempty" yaml:"show,omitempty"`
	Skip *SkipLogic      `json:"skip,omitempty" yaml:"skip,omitempty"`
}

// ConditionGroup is a list of conditions folded left to right.
type ConditionGroup struct {
	Enabled    bool        `json:"enabled"    yaml:"enabled"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}

// SkipLogic jumps to TargetFieldID when its conditions hold.
type SkipLogic struct {
	Enabled       bool        `json:"enabled"       yaml:"enabled"`
	Conditions    []Condition `json:"conditions"    yaml:"conditions"`
	TargetFieldID string      `json:"targetFieldId" yaml:"targetFieldId"`
}

// Condition compares the answer of FieldID against Value.
type Condition struct {
	FieldID         string          `json:"fieldId"                   yaml:"fieldId"  jsonschema:"required"`
	Operator        Operator        `json:"operator"                  yaml:"operator" jsonschema:"required"`
	Value           Value           `json:"value"                     yaml:"value"`
	LogicalOperator LogicalOperator `json:"logicalOperator,omitempty" yaml:"logicalOperator,omitempty"`
}

// Calculation is an arithmetic formula over other fields.
type Calculation struct {
	Enabled      bool        `json:"enabled"               yaml:"enabled"`
	Formula      string      `json:"formula"               yaml:"formula" jsonschema:"required"`
	Dependencies []string    `json:"dependencies"          yaml:"dependencies"`
	DisplayType  DisplayType `json:"displayType,omitempty" yaml:"displayType,omitempty"`
}

// AnswerRecall copies or templates earlier answers into a field.
type AnswerRecall struct {
	Enabled       bool   `json:"enabled"                 yaml:"enabled"`
	SourceFieldID string `json:"sourceFieldId,omitempty" yaml:"sourceFieldId,omitempty"`
	Template      string `json:"template,omitempty"      yaml:"template,omitempty"`
}

// Prefill populates a field from a URL parameter or a default.
type Prefill struct {
	Enabled      bool   `json:"enabled"                yaml:"enabled"`
	URLParameter string `json:"urlParameter,omitempty" yaml:"urlParameter,omitempty"`
	DefaultValue Value  `json:"defaultValue,omitzero"  yaml:"defaultValue,omitempty"`
}

// ShowConditions returns the enabled visibility group, or nil.
func (f *Field) ShowConditions() *ConditionGroup {
	if f.Conditional == nil || f.Conditional.Show == nil || !f.Conditional.Show.Enabled {
		return nil
	}
	return f.Conditional.Show
}

// SkipConditions returns the enabled skip logic, or nil.
func (f *Field) SkipConditions() *SkipLogic {
	if f.Conditional == nil || f.Conditional.Skip == nil || !f.Conditional.Skip.Enabled {
		return nil
	}
	return f.Conditional.Skip
}

// HasCalculation reports whether the field carries an enabled formula.
func (f *Field) HasCalculation() bool {
	return f.Calculation != nil && f.Calculation.Enabled
}

// HasRecall reports whether answer recall is enabled.
func (f *Field) HasRecall() bool {
	return f.AnswerRecall != nil && f.AnswerRecall.Enabled
}

// HasPrefill reports whether prefill is enabled.
func (f *Field) HasPrefill() bool {
	return f.Prefill != nil && f.Prefill.Enabled
}

// HasOption reports whether option is one of the field's options, ignoring
// case and surrounding whitespace. The canonical spelling is returned.
func (f *Field) HasOption(option string) (string, bool) {
	want := normalizeOption(option)
	for _, o := range f.Options {
		if normalizeOption(o) == want {
			return o, true
		}
	}
	return "", false
}
