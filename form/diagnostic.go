package form

// Diagnostic records a runtime degradation: something in the form could not
// be evaluated and a safe default was used instead.
type Diagnostic struct {
	Component string `json:"component"`
	FieldID   string `json:"fieldId,omitempty"`
	Message   string `json:"message"`
}
