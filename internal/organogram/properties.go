package organogram

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Properties holds the property map of one node.
type Properties map[string]any

// Name returns the "name" property, or "" when absent.
func (p Properties) Name() string {
	return p.String("name")
}

// Status returns the "status" property, or "" when absent.
func (p Properties) Status() string {
	return p.String("status")
}

// String returns the property as a string. Non-string values are formatted with %v.
func (p Properties) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Time interprets the property as a point in time. Driver temporal values,
// time.Time and RFC 3339 strings are accepted.
func (p Properties) Time(key string) (time.Time, bool) {
	switch v := p[key].(type) {
	case time.Time:
		return v, true
	case dbtype.LocalDateTime:
		return v.Time(), true
	case dbtype.Date:
		return v.Time(), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// NormalizeValue converts driver-specific values into types that encode
// cleanly as JSON or YAML. Temporal values become time.Time or strings.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case dbtype.LocalDateTime:
		return val.Time()
	case dbtype.Date:
		return val.Time().Format("2006-01-02")
	case dbtype.LocalTime:
		return val.Time().Format("15:04:05.999999999")
	case dbtype.Time:
		return val.Time().Format("15:04:05.999999999Z07:00")
	case dbtype.Duration:
		return val.String()
	case dbtype.Point2D:
		return val.String()
	case dbtype.Point3D:
		return val.String()
	case dbtype.Node:
		return NormalizeProperties(val.Props)
	case map[string]any:
		return NormalizeProperties(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// NormalizeProperties returns a copy of props with every value normalized.
func NormalizeProperties(props map[string]any) Properties {
	if props == nil {
		return nil
	}
	out := make(Properties, len(props))
	for k, v := range props {
		out[k] = NormalizeValue(v)
	}
	return out
}

// asProperties accepts a property map or a driver node, returning nil for null.
func asProperties(v any) Properties {
	switch val := v.(type) {
	case map[string]any:
		return NormalizeProperties(val)
	case Properties:
		return NormalizeProperties(val)
	case dbtype.Node:
		return NormalizeProperties(val.Props)
	default:
		return nil
	}
}

// asPropertiesList converts a collected list, dropping nulls.
func asPropertiesList(v any) []Properties {
	out := []Properties{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if props := asProperties(item); props != nil {
			out = append(out, props)
		}
	}
	return out
}
