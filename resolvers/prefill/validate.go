package prefill

import (
	"regexp"

	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/internal/coerce"
)

// parameterPattern is the conventional shape of a query parameter name.
var parameterPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// Validate checks prefill configuration at authoring time.
func Validate(fields []form.Field) form.ValidationResult {
	var rep form.Reporter
	usedBy := make(map[string]string)
	r := &Resolver{scaleMin: DefaultScaleMin, scaleMax: DefaultScaleMax}

	for _, f := range form.Ordered(fields) {
		if !f.HasPrefill() {
			continue
		}
		p := f.Prefill
		if p.URLParameter == "" && p.DefaultValue.IsEmpty() {
			rep.Errorf(f.ID, form.CodeMissingConfig, "prefill is enabled without a URL parameter or default value")
			continue
		}

		if name := p.URLParameter; name != "" {
			if !parameterPattern.MatchString(name) {
				rep.Warnf(f.ID, form.CodeMalformedParameter, "parameter name %q should only use letters, digits, '_', '-' and '.'", name)
			}
			if first, dup := usedBy[name]; dup {
				rep.Warnf(f.ID, form.CodeDuplicateParameter, "parameter %q is also used by %q", name, first)
			} else {
				usedBy[name] = f.ID
			}
		}

		if !p.DefaultValue.IsEmpty() && !defaultFits(r, f) {
			rep.Warnf(f.ID, form.CodeInvalidDefault, "default value %q is not valid for this field", p.DefaultValue.String())
		}
	}
	return rep.Result()
}

// defaultFits reports whether the default survives coercion unchanged in
// substance: choices must all be options and numbers in range.
func defaultFits(r *Resolver, f form.Field) bool {
	def := f.Prefill.DefaultValue
	got := r.Coerce(f, def)
	if rejected(got) {
		return false
	}
	if f.Type == form.TypeCheckbox && len(f.Options) > 0 {
		return len(got.List()) == len(coerce.Selections(def, nil).List())
	}
	return true
}
