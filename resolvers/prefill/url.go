package prefill

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robbyt/go-formlogic/form"
)

// GenerateURL adds the values of prefill-enabled fields to base as query
// parameters. Fields without a parameter name or without a value are skipped
// and existing query parameters of base are kept. Lists are comma joined and
// dates written as YYYY-MM-DD, matching what Resolve reads back.
func GenerateURL(base string, fields []form.Field, values form.Responses) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	q := u.Query()
	for _, f := range form.Ordered(fields) {
		if !f.HasPrefill() || f.Prefill.URLParameter == "" {
			continue
		}
		v := values.Get(f.ID)
		if v.IsEmpty() {
			continue
		}
		q.Set(f.Prefill.URLParameter, encodeValue(v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func encodeValue(v form.Value) string {
	switch v.Kind() {
	case form.KindList:
		return strings.Join(v.List(), ",")
	case form.KindDate:
		t, _ := v.Time()
		return t.Format(time.DateOnly)
	default:
		return v.String()
	}
}
