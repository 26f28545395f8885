package engine

import (
	"strconv"
	"strings"
)

// BoolModifier renders the truthiness of a value as "true" or "false".
const BoolModifier = "bool"

// Interpolator expands {name}, {name:modifier} and {name:modifier=a,b}
// placeholders against a value store and a formatter table.
type Interpolator struct {
	formatters map[string]Formatter
	values     ValueReader
}

func NewInterpolator(formatters map[string]Formatter, values ValueReader) *Interpolator {
	if formatters == nil {
		formatters = map[string]Formatter{}
	}
	return &Interpolator{formatters: formatters, values: values}
}

// Interpolate substitutes every placeholder in text. Substituted content is
// never scanned again, and an unterminated placeholder is kept verbatim.
func (in *Interpolator) Interpolate(text string) (string, error) {
	found := scanPlaceholders(text)
	if len(found) == 0 {
		return text, nil
	}
	seen := make(map[string]struct{}, len(found))
	pairs := make([]string, 0, len(found)*2)
	for _, ph := range found {
		if _, ok := seen[ph.raw]; ok {
			continue
		}
		seen[ph.raw] = struct{}{}
		value, err := in.resolve(ph)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, ph.raw, value)
	}
	return strings.NewReplacer(pairs...).Replace(text), nil
}

// Lines interpolates each line in order.
func (in *Interpolator) Lines(lines []string) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		text, err := in.Interpolate(line)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

func (in *Interpolator) resolve(ph placeholder) (string, error) {
	value, ok := in.values.Lookup(ph.name)
	if !ok {
		return "", configErrorf("", "interpolating %s: unknown variable %q", ph.raw, ph.name)
	}
	raw := value.String()

	if ph.modifier == "" {
		table, ok := in.formatters[ph.name]
		if !ok {
			return raw, nil
		}
		return lookupFormatted(ph, table, raw)
	}
	if ph.modifier == BoolModifier && !ph.hasArgs {
		return strconv.FormatBool(value.Truthy()), nil
	}
	table, ok := in.formatters[ph.modifier]
	if !ok {
		return "", configErrorf("", "interpolating %s: modifier %q is not a formatter", ph.raw, ph.modifier)
	}
	text, err := lookupFormatted(ph, table, raw)
	if err != nil || !ph.hasArgs {
		return text, err
	}
	return formatPositional(text, ph.args), nil
}

func lookupFormatted(ph placeholder, table Formatter, raw string) (string, error) {
	text, ok := table[raw]
	if !ok {
		return "", configErrorf("", "interpolating %s: formatter has no text for value %q", ph.raw, raw)
	}
	return text, nil
}

func formatPositional(template string, args []string) string {
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

type placeholder struct {
	raw      string
	name     string
	modifier string
	hasArgs  bool
	args     []string
}

type scanState int

const (
	scanPlain scanState = iota
	scanName
	scanModifier
	scanArgs
)

// scanPlaceholders walks text once and returns placeholders in order of
// appearance, duplicates included.
func scanPlaceholders(text string) []placeholder {
	var (
		out   []placeholder
		state = scanPlain
		start int
		cur   placeholder
		name  strings.Builder
		mod   strings.Builder
		arg   strings.Builder
	)
	begin := func(i int) {
		state = scanName
		start = i
		cur = placeholder{}
		name.Reset()
		mod.Reset()
		arg.Reset()
	}
	for i, r := range text {
		switch state {
		case scanPlain:
			if r == '{' {
				begin(i)
			}
		case scanName:
			switch r {
			case '{':
				begin(i)
			case '}':
				cur.name = name.String()
				cur.raw = text[start : i+1]
				out = append(out, cur)
				state = scanPlain
			case ':':
				state = scanModifier
			default:
				name.WriteRune(r)
			}
		case scanModifier:
			switch r {
			case '{':
				begin(i)
			case '}':
				cur.name = name.String()
				cur.modifier = mod.String()
				cur.raw = text[start : i+1]
				out = append(out, cur)
				state = scanPlain
			case '=':
				cur.hasArgs = true
				state = scanArgs
			default:
				mod.WriteRune(r)
			}
		case scanArgs:
			switch r {
			case '}':
				cur.args = append(cur.args, arg.String())
				cur.name = name.String()
				cur.modifier = mod.String()
				cur.raw = text[start : i+1]
				out = append(out, cur)
				state = scanPlain
			case ',':
				cur.args = append(cur.args, arg.String())
				arg.Reset()
			default:
				arg.WriteRune(r)
			}
		}
	}
	return out
}
