package memory

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Argument coercion helpers. Tool arguments arrive as an already-parsed
// map[string]any from the protocol layer; JSON numbers come through as
// float64, and some hosts pass objects as JSON-encoded strings, so each
// helper accepts the shapes seen in the wild.

// argString returns the string value for key, or "" when absent or not a
// string.
func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// argBool returns the boolean value for key and whether it was present.
func argBool(args map[string]any, key string) (bool, bool) {
	raw, ok := args[key]
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// argInt coerces an integer argument. Floats with a fractional part and
// unparseable strings are rejected.
func argInt(args map[string]any, key string) (int64, bool, error) {
	raw, ok := args[key]
	if !ok {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, true, &ValidationError{Param: key, Reason: "must be an integer"}
		}
		return int64(v), true, nil
	case int:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case string:
		if v == "" {
			return 0, false, nil
		}
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, true, &ValidationError{Param: key, Reason: "must be an integer"}
		}
		return i, true, nil
	default:
		return 0, true, &ValidationError{Param: key, Reason: fmt.Sprintf("unsupported type %T", raw)}
	}
}

// argFloat coerces a numeric argument.
func argFloat(args map[string]any, key string) (float64, bool, error) {
	raw, ok := args[key]
	if !ok {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case string:
		if v == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, true, &ValidationError{Param: key, Reason: "must be a number"}
		}
		return f, true, nil
	default:
		return 0, true, &ValidationError{Param: key, Reason: fmt.Sprintf("unsupported type %T", raw)}
	}
}

// argMap coerces an object argument that may arrive as a map or as a
// JSON-encoded string.
func argMap(args map[string]any, key, reason string) (map[string]any, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		var parsed map[string]any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return nil, &ValidationError{Param: key, Reason: reason}
		}
		return parsed, nil
	default:
		return nil, &ValidationError{Param: key, Reason: reason}
	}
}
