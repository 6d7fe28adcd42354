package ask

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

func resolveMessage(q Question, answers *Answers) (string, error) {
	if q.MessageFunc == nil {
		return q.Message, nil
	}
	message, err := q.MessageFunc(answers)
	if err != nil {
		return "", fmt.Errorf("resolve message of %q: %w", q.Name, err)
	}
	return message, nil
}

func resolveDefault(q Question, answers *Answers) (any, error) {
	if q.DefaultFunc == nil {
		return q.Default, nil
	}
	value, err := q.DefaultFunc(answers)
	if err != nil {
		return nil, fmt.Errorf("resolve default of %q: %w", q.Name, err)
	}
	return value, nil
}

// firstDefined returns the first non-nil value.
func firstDefined(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// toSlice converts any slice or array to []any. A non-slice value becomes a
// one-element slice; nil becomes nil.
func toSlice(value any) []any {
	if value == nil {
		return nil
	}
	if s, ok := value.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// textValue renders a resolved default for a text entry.
func textValue(value any) string {
	if value == nil {
		return ""
	}
	return cast.ToString(value)
}

// valuesEqual compares option values loosely so that a stored 3 (float64
// from JSON) still matches an option value of int 3.
func valuesEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
