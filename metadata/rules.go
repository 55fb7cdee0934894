package metadata

import (
	"fmt"
	"strings"
)

// A Rule converts the raw value of one field to its normalized value. It returns omit to drop
// the field.
type Rule func(value interface{}, s Settings) (interface{}, error)

// omit is returned by a Rule when the field must not appear in the output.
var omit = &struct{ name string }{"omit"}

// rules are the field-specific conversions applied during normalization.
var rules = map[string]Rule{
	"tags":     func(v interface{}, _ Settings) (interface{}, error) { return objectList(v, NewTag), nil },
	"authors":  func(v interface{}, _ Settings) (interface{}, error) { return objectList(v, NewAuthor), nil },
	"date":     dateRule,
	"modified": dateRule,
	"category": func(v interface{}, _ Settings) (interface{}, error) { return object(v, NewCategory), nil },
	"author":   func(v interface{}, _ Settings) (interface{}, error) { return object(v, NewAuthor), nil },
	"slug":     stripRule,
	"save_as":  stripRule,
	"status":   stripRule,
}

func dateRule(v interface{}, s Settings) (interface{}, error) {
	return ParseDate(v, s.location())
}

func stripRule(v interface{}, _ Settings) (interface{}, error) {
	if s := strip(v); s != "" {
		return s, nil
	}
	return omit, nil
}

func object[T any](v interface{}, newObject func(string) T) interface{} {
	if list, ok := v.([]interface{}); ok && len(list) > 0 {
		v = list[0]
	}
	name := strip(v)
	if name == "" {
		return omit
	}
	return newObject(name)
}

func objectList[T any](v interface{}, newObject func(string) T) interface{} {
	var objects []T
	for _, e := range toList(v) {
		if name := strip(e); name != "" {
			objects = append(objects, newObject(name))
		}
	}
	if len(objects) == 0 {
		return omit
	}
	return objects
}

// toList returns v as a list. A scalar becomes a one-element list.
func toList(v interface{}) []interface{} {
	switch v := v.(type) {
	case []interface{}:
		return v
	case []string:
		list := make([]interface{}, len(v))
		for i, s := range v {
			list[i] = s
		}
		return list
	default:
		return []interface{}{v}
	}
}

func strip(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
