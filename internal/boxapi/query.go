package boxapi

import (
	"fmt"
	"net/url"
	"strconv"
)

// Query serializes an options bag into URL query values. Keys are forwarded
// verbatim; values are rendered in their canonical string form.
func Query(params map[string]any) url.Values {
	if len(params) == 0 {
		return nil
	}
	q := make(url.Values, len(params))
	for k, v := range params {
		q.Set(k, queryValue(v))
	}
	return q
}

func queryValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
