/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinical

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coerce converts a measurement value to a float64 on a best-effort basis.
// Numeric kinds, json.Number and numeric text are accepted. Booleans, nil
// and anything else report false.
func Coerce(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseText(string(n))
	case string:
		return parseText(n)
	case []byte:
		return parseText(string(n))
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case *string:
		if n == nil {
			return 0, false
		}
		return parseText(*n)
	default:
		return 0, false
	}
}

func parseText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isHexText(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// isHexText reports whether s uses the 0x prefix, which ParseFloat accepts
// but lab values never carry.
func isHexText(s string) bool {
	s = strings.TrimLeft(s, "+-")

	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
