// Package coerce turns loosely typed input into strict values.
package coerce

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotBool = errors.New("value is not a boolean")

// Bool accepts true/false, "true"/"false" (any case), "1"/"0" and the
// numbers 1 and 0. Anything else, nil included, is rejected.
func Bool(v any) (bool, error) {
	switch value := v.(type) {
	case bool:
		return value, nil
	case *bool:
		if value != nil {
			return *value, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	case int:
		return intBool(int64(value), v)
	case int32:
		return intBool(int64(value), v)
	case int64:
		return intBool(value, v)
	case uint:
		return intBool(int64(value), v)
	case float32:
		return floatBool(float64(value), v)
	case float64:
		return floatBool(value, v)
	}
	return false, fmt.Errorf("%w: %v", ErrNotBool, v)
}

func intBool(n int64, raw any) (bool, error) {
	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrNotBool, raw)
}

func floatBool(f float64, raw any) (bool, error) {
	switch f {
	case 1:
		return true, nil
	case 0:
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrNotBool, raw)
}
