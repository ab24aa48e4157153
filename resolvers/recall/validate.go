package recall

import "github.com/robbyt/go-formlogic/form"

// Validate checks answer recall configuration at authoring time. Recalling a
// field that comes later in the form is only a warning: in multi-step flows
// the later field may already be answered.
func Validate(fields []form.Field) form.ValidationResult {
	var rep form.Reporter
	index := form.IndexByID(fields)
	pos := form.Positions(fields)

	checkRef := func(owner form.Field, id, what string) {
		_, known := index[id]
		switch {
		case id == "":
			rep.Errorf(owner.ID, form.CodeUnknownField, "%s has a token without a field id", what)
		case id == owner.ID:
			rep.Errorf(owner.ID, form.CodeSelfReference, "%s references its own field", what)
		case !known:
			rep.Errorf(owner.ID, form.CodeUnknownField, "%s references unknown field %q", what, id)
		case pos[id] > pos[owner.ID]:
			rep.Warnf(owner.ID, form.CodeForwardReference, "%s references %q which comes later in the form", what, id)
		}
	}

	for _, f := range form.Ordered(fields) {
		if !f.HasRecall() {
			continue
		}
		cfg := f.AnswerRecall
		switch {
		case cfg.SourceFieldID == "" && cfg.Template == "":
			rep.Errorf(f.ID, form.CodeMissingConfig, "answer recall is enabled without a source field or template")
			continue
		case cfg.SourceFieldID != "" && cfg.Template != "":
			rep.Warnf(f.ID, form.CodeDualConfig, "both a source field and a template are set; the template is used")
		}

		if cfg.Template != "" {
			for _, id := range References(cfg.Template) {
				checkRef(f, id, "template")
			}
			continue
		}
		checkRef(f, cfg.SourceFieldID, "source field")
	}
	return rep.Result()
}
