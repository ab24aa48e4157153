package form

import "maps"

// Responses maps field ids to the respondent's current answers.
type Responses map[string]Value

// ResponsesFrom converts loosely typed answers into Responses.
func ResponsesFrom(m map[string]any) Responses {
	out := make(Responses, len(m))
	for id, v := range m {
		out[id] = FromAny(v)
	}
	return out
}

// Get returns the answer for id, or the empty Value.
func (r Responses) Get(id string) Value {
	if r == nil {
		return Null()
	}
	return r[id]
}

// Clone returns a shallow copy of r. Values are immutable so sharing them is safe.
func (r Responses) Clone() Responses {
	if r == nil {
		return make(Responses)
	}
	return maps.Clone(r)
}
