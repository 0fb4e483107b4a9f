// Package models defines the typed records returned by tool calls and the
// coercion rules that absorb the upstream API's loose typing (numbers as
// strings, absent fields, zero-valued placeholders).
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// CoerceNumeric converts a number or numeric string to a float.
// Returns nil for nil, empty string, or anything that fails to parse.
func CoerceNumeric(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f := n
		return &f
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// CoerceInt converts a number or numeric string to an integer.
// Parses as float first and truncates, so "100.0" becomes 100.
func CoerceInt(v any) *int64 {
	f := CoerceNumeric(v)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// timestampLayouts are tried in order when canonicalizing a timestamp.
// The bare layouts cover upstream values without a zone designator, which
// are treated as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// CoerceTimestamp re-emits an ISO-8601-like timestamp in one canonical form
// (UTC, "Z" suffix). Unparseable input is returned unchanged rather than
// discarded: a malformed timestamp may still mean something to the caller.
// The canonical form is a fixed point, so applying this twice is a no-op.
func CoerceTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, ts)
		if err == nil {
			return t.UTC().Format(time.RFC3339Nano)
		}
	}
	return ts
}

// payload helpers shared by the FromPayload constructors

func payloadString(item map[string]any, key string) string {
	if s, ok := item[key].(string); ok {
		return s
	}
	return ""
}

func payloadOptString(item map[string]any, key string) *string {
	if s, ok := item[key].(string); ok {
		return &s
	}
	return nil
}

func payloadOptBool(item map[string]any, key string) *bool {
	if b, ok := item[key].(bool); ok {
		return &b
	}
	return nil
}
