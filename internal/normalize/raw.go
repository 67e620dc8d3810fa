package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// dig walks a decoded JSON value. String keys index objects, int keys index
// arrays. Any missing or mistyped step yields nil.
func dig(v interface{}, path ...interface{}) interface{} {
	cur := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return nil
			}
			cur = obj[key]
		case int:
			arr, ok := cur.([]interface{})
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}
			cur = arr[key]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// digArray returns the array at path, or nil
func digArray(v interface{}, path ...interface{}) []interface{} {
	arr, _ := dig(v, path...).([]interface{})
	return arr
}

// digString returns the value at path as text. Numbers are formatted without
// trailing zeros; anything else is empty.
func digString(v interface{}, path ...interface{}) string {
	return asString(dig(v, path...))
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

// asNumber parses a number or numeric string. ok is false when v is absent or
// not numeric.
func asNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case map[string]interface{}:
		// Some feeds wrap scores as {"value": 24, "displayValue": "24"}
		return asNumber(val["value"])
	default:
		return 0, false
	}
}

// asInt is asNumber truncated to an int. Values outside the int range fail.
func asInt(v interface{}) (int, bool) {
	f, ok := asNumber(v)
	if !ok || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// lineString renders an odds figure. Zero and absent values render empty.
func lineString(v interface{}) string {
	if f, ok := asNumber(v); ok {
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return asString(v)
}

// firstNonEmpty returns the first argument that is not empty
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
