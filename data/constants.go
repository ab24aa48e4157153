package data

// ContextKey is the type of context keys used by ContextProvider.
type ContextKey string

const (
	// EvalData is the default context key for evaluation input.
	EvalData ContextKey = "formlogic_eval_data"

	// ResponsesKey holds the respondent's answers, as map[string]any or form.Responses.
	ResponsesKey = "responses"
	// ParamsKey holds raw, still URL-encoded query parameters as map[string]string.
	ParamsKey = "params"
)
