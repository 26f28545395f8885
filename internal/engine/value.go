package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindInt
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Value is a variable value in the store. The text form is what the
// interpolator displays and what persistence layers write back.
type Value struct {
	kind ValueKind
	text string
	b    bool
	n    int
}

// StringValue wraps s without any conversion.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// BoolValue wraps b.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, text: strconv.FormatBool(b), b: b}
}

// IntValue wraps n.
func IntValue(n int) Value {
	return Value{kind: KindInt, text: strconv.Itoa(n), n: n}
}

// ParseValue converts the text representation used in models and INI files:
// "true"/"false" become booleans, all-digit strings become integers and
// anything else stays a string. Integer values keep their original text.
func ParseValue(raw string) Value {
	switch raw {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	if isDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err == nil {
			return Value{kind: KindInt, text: raw, n: n}
		}
	}
	return StringValue(raw)
}

// ValueOf coerces host-provided values. Strings go through ParseValue so
// "true" and true end up identical.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case bool:
		return BoolValue(t)
	case int:
		return IntValue(t)
	case int64:
		return IntValue(int(t))
	case string:
		return ParseValue(t)
	case fmt.Stringer:
		return ParseValue(t.String())
	case nil:
		return StringValue("")
	default:
		return ParseValue(strings.ToLower(fmt.Sprint(t)))
	}
}

func (v Value) Kind() ValueKind { return v.kind }

// String returns the display form.
func (v Value) String() string { return v.text }

// Bool reports the boolean held by v and whether v is a boolean at all.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int reports the integer held by v and whether v is an integer at all.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.n, true
}

// Truthy applies the loose truthiness used by the bool modifier.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.n != 0
	default:
		return v.text != ""
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
