package matchers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// valueShape classifies a field value for the structural predicates. The
// classification happens in a single decode step so every matcher applies the
// same shape policy instead of re-deriving it.
type valueShape int

const (
	shapeScalar valueShape = iota
	shapeObject
	shapeObjectList
	shapeInvalid
)

type fieldValue struct {
	shape   valueShape
	object  map[string]any
	objects []map[string]any
}

// decodeValue classifies raw. Strings are parsed as JSON; a string that does
// not parse, or parses to a JSON scalar, stays a scalar. A list containing
// any non-object element is invalid.
func decodeValue(raw any) fieldValue {
	switch v := raw.(type) {
	case map[string]any:
		return fieldValue{shape: shapeObject, object: v}
	case []any:
		return classifyList(v)
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return fieldValue{shape: shapeScalar}
		}
		switch d := decoded.(type) {
		case map[string]any:
			return fieldValue{shape: shapeObject, object: d}
		case []any:
			return classifyList(d)
		default:
			return fieldValue{shape: shapeScalar}
		}
	default:
		return fieldValue{shape: shapeScalar}
	}
}

func classifyList(list []any) fieldValue {
	objects := make([]map[string]any, 0, len(list))
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return fieldValue{shape: shapeInvalid}
		}
		objects = append(objects, obj)
	}
	return fieldValue{shape: shapeObjectList, objects: objects}
}

// isBlank reports whether v is blank: absent/nil, an empty string, or an
// empty collection.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// stringValue renders a scalar the way it appears in a record, so set
// membership and uniqueness treat 42 and "42" consistently.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// isIntegerValue reports whether v is, or parses as, a base-10 integer.
func isIntegerValue(v any) bool {
	switch t := v.(type) {
	case string:
		_, err := strconv.Atoi(t)
		return err == nil
	case float64:
		return t == math.Trunc(t)
	case int, int32, int64:
		return true
	default:
		return false
	}
}

// objectKeys returns the key set of obj in arbitrary order.
func objectKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return keys
}
