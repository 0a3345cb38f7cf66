// Copyright 2020 WolkAbout Technology s.r.o.

package protocol

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// valueToString renders a reading or actuator value the way the gateway
// expects it: scalars with their natural formatting, multi-values joined
// with commas.
func valueToString(value interface{}) string {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = scalarToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return scalarToString(value)
}

func scalarToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// configurationValueToString additionally escapes newlines and double quotes,
// which the gateway can not transport raw inside configuration payloads.
func configurationValueToString(value interface{}) string {
	s := valueToString(value)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// parseConfigurationValue turns an inbound configuration value into its typed
// form. Comma-separated strings become homogeneous slices: all-integer parts
// parse to []int64, parts with a decimal point to []float64, anything else
// stays a []string. Scalars are passed through untouched.
func parseConfigurationValue(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	if !strings.Contains(s, ",") {
		return s
	}

	parts := strings.Split(s, ",")
	if strings.Contains(s, ".") {
		floats := make([]float64, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return parts
			}
			floats[i] = f
		}
		return floats
	}
	ints := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return parts
		}
		ints[i] = n
	}
	return ints
}
