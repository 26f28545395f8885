package engine

import (
	"errors"
	"testing"
)

func storeWith(values map[string]string) *Store {
	s := NewStore()
	for k, v := range values {
		s.Set(k, v)
	}
	return s
}

func TestInterpolate(t *testing.T) {
	formatters := map[string]Formatter{
		"yesno":  {"true": "Yes", "false": "No"},
		"flag":   {"1": "only in {0}", "2": "{0} and {1}"},
		"region": {"US": "United States"},
	}
	cases := []struct {
		name   string
		text   string
		values map[string]string
		want   string
	}{
		{"plain variable", "{x}", map[string]string{"x": "5"}, "5"},
		{"modifier", "{x:yesno}", map[string]string{"x": "true"}, "Yes"},
		{"modifier args", "{x:flag=Foo}", map[string]string{"x": "1"}, "only in Foo"},
		{"two args", "{x:flag=A,B}", map[string]string{"x": "2"}, "A and B"},
		{"variable named like formatter", "Region: {region}", map[string]string{"region": "US"}, "Region: United States"},
		{"bool modifier", "{n:bool}/{e:bool}", map[string]string{"n": "3", "e": ""}, "true/false"},
		{"repeated placeholder", "{x} + {x}", map[string]string{"x": "1"}, "1 + 1"},
		{"no placeholders", "Plain text", nil, "Plain text"},
		{"unterminated", "open {x", map[string]string{"x": "1"}, "open {x"},
		{"not recursive", "{a}", map[string]string{"a": "{b}", "b": "no"}, "{b}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := NewInterpolator(formatters, storeWith(tc.values))
			got, err := in.Interpolate(tc.text)
			if err != nil {
				t.Fatalf("interpolate %q: %v", tc.text, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestInterpolateErrors(t *testing.T) {
	formatters := map[string]Formatter{"yesno": {"true": "Yes"}}
	values := storeWith(map[string]string{"x": "false"})
	cases := map[string]string{
		"unknown modifier":  "{x:missing}",
		"unknown variable":  "{nope}",
		"missing formatted": "{x:yesno}",
		"args on unknown":   "{x:missing=a}",
	}
	for name, text := range cases {
		_, err := NewInterpolator(formatters, values).Interpolate(text)
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", name, err)
		}
	}
}

func TestInterpolatorLines(t *testing.T) {
	in := NewInterpolator(nil, storeWith(map[string]string{"who": "world"}))
	lines, err := in.Lines([]string{"hello", "{who}"})
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if lines[0] != "hello" || lines[1] != "world" {
		t.Fatalf("unexpected lines %v", lines)
	}
}
