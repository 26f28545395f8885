package engine

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadModelFile reads, parses, expands and validates the model at path.
func LoadModelFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return LoadModel(data)
}

// LoadModel parses a YAML or JSON model, expands every base type and runs the
// structural validation. Custom effect names are checked later, once the host
// has registered its callbacks.
func LoadModel(data []byte) (*Model, error) {
	m, err := ParseModel(data)
	if err != nil {
		return nil, err
	}
	if err := ExpandModel(m); err != nil {
		return nil, err
	}
	if err := Validate(m, ValidateOptions{}); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseModel decodes data into typed variants without expanding base types.
func ParseModel(data []byte) (*Model, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	root, ok := asMap(raw)
	if !ok {
		return nil, configErrorf("", "model must be a mapping")
	}

	p := &parser{baseTypes: map[string]struct{}{}}
	m := &Model{
		Items:      map[string]*Screen{},
		BaseTypes:  map[string]*Screen{},
		Formatters: map[string]Formatter{},
		Variables:  map[string]Variable{},
	}

	bases, _ := asMap(root["base_types"])
	for name := range bases {
		p.baseTypes[name] = struct{}{}
	}
	for _, name := range sortedKeys(bases) {
		node, ok := asMap(bases[name])
		if !ok {
			return nil, configErrorf("base_types."+name, "base type must be a mapping")
		}
		screen, err := p.screen("base_types."+name, node)
		if err != nil {
			return nil, err
		}
		m.BaseTypes[name] = screen
	}

	items, ok := asMap(root["items"])
	if !ok {
		return nil, configErrorf("items", "model has no items mapping")
	}
	for _, id := range sortedKeys(items) {
		node, ok := asMap(items[id])
		if !ok {
			return nil, configErrorf("items."+id, "item must be a mapping")
		}
		screen, err := p.screen("items."+id, node)
		if err != nil {
			return nil, err
		}
		m.Items[id] = screen
	}

	var err error
	if m.Formatters, err = p.formatters("formatters", root["formatters"]); err != nil {
		return nil, err
	}
	if m.Variables, err = p.variables("variables", root["variables"]); err != nil {
		return nil, err
	}
	return m, nil
}

type parser struct {
	baseTypes map[string]struct{}
}

func (p *parser) screen(path string, raw map[string]any) (*Screen, error) {
	ui, _ := scalar(raw["ui"])
	if ui == "" {
		ui, _ = scalar(raw["type"])
	}
	if ui == "" {
		return nil, configErrorf(path, "screen has no ui or type discriminator")
	}
	s := &Screen{UI: ui}
	s.Header, _ = scalar(raw["header"])
	s.PreselectedAction, _ = scalar(raw["preselected_action"])
	s.ActionName, _ = scalar(raw["action_name"])

	var err error
	if s.Text, err = stringList(path+".text", raw["text"]); err != nil {
		return nil, err
	}
	if s.Entries, err = p.entries(path+".entries", raw["entries"]); err != nil {
		return nil, err
	}
	if s.Actions, err = p.actions(path+".actions", raw["actions"]); err != nil {
		return nil, err
	}
	if s.Hotkeys, err = p.hotkeys(path+".hotkeys", raw["hotkeys"]); err != nil {
		return nil, err
	}
	if s.Variables, err = p.variables(path+".variables", raw["variables"]); err != nil {
		return nil, err
	}
	if s.Formatters, err = p.formatters(path+".formatters", raw["formatters"]); err != nil {
		return nil, err
	}
	if raw["effects"] != nil {
		if s.Effects, err = p.chain(path+".effects", raw["effects"]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) entries(path string, raw any) ([]Entry, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, configErrorf(path, "entries must be a list")
	}
	out := make([]Entry, 0, len(list))
	for i, item := range list {
		at := fmt.Sprintf("%s[%d]", path, i)
		node, ok := asMap(item)
		if !ok {
			return nil, configErrorf(at, "entry must be a mapping")
		}
		e := Entry{}
		e.ID, _ = scalar(node["id"])
		e.Title, _ = scalar(node["title"])
		e.Description, _ = scalar(node["description"])
		if rawActions, present := node["actions"]; present {
			actions, ok := asMap(rawActions)
			if !ok {
				return nil, configErrorf(at+".actions", "entry actions must map symbols to chains")
			}
			e.Actions = make(map[string]Chain, len(actions))
			for _, symbol := range sortedKeys(actions) {
				chain, err := p.chain(at+".actions."+symbol, actions[symbol])
				if err != nil {
					return nil, err
				}
				e.Actions[symbol] = chain
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (p *parser) actions(path string, raw any) ([]Action, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, configErrorf(path, "actions must be a list")
	}
	out := make([]Action, 0, len(list))
	for i, item := range list {
		at := fmt.Sprintf("%s[%d]", path, i)
		node, ok := asMap(item)
		if !ok {
			return nil, configErrorf(at, "action must be a mapping")
		}
		a := Action{}
		a.Title, _ = scalar(node["title"])
		kind, _ := scalar(node["type"])
		switch {
		case kind == string(ActionSymbol) || (kind == "" && node["symbol"] != nil):
			a.Type = ActionSymbol
			a.Symbol, _ = scalar(node["symbol"])
			if a.Symbol == "" {
				return nil, configErrorf(at, "symbol action needs a symbol")
			}
		case kind == string(ActionFixed) || (kind == "" && node["fixed"] != nil):
			a.Type = ActionFixed
			chain, err := p.chain(at+".fixed", node["fixed"])
			if err != nil {
				return nil, err
			}
			a.Fixed = chain
		default:
			return nil, configErrorf(at, "unknown action type %q", kind)
		}
		out = append(out, a)
	}
	return out, nil
}

func (p *parser) hotkeys(path string, raw any) ([]Hotkey, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, configErrorf(path, "hotkeys must be a list")
	}
	out := make([]Hotkey, 0, len(list))
	for i, item := range list {
		at := fmt.Sprintf("%s[%d]", path, i)
		node, ok := asMap(item)
		if !ok {
			return nil, configErrorf(at, "hotkey must be a mapping")
		}
		keys, ok := node["keys"].([]any)
		if !ok || len(keys) == 0 {
			return nil, configErrorf(at+".keys", "hotkey needs a non-empty keys list")
		}
		hk := Hotkey{}
		for _, k := range keys {
			switch t := k.(type) {
			case int:
				hk.Keys = append(hk.Keys, KeyFromCode(t))
			case string:
				hk.Keys = append(hk.Keys, KeyFromName(t))
			default:
				return nil, configErrorf(at+".keys", "unsupported key %v", k)
			}
		}
		rawChain := node["action"]
		if rawChain == nil {
			rawChain = node["effects"]
		}
		chain, err := p.chain(at+".action", rawChain)
		if err != nil {
			return nil, err
		}
		hk.Chain = chain
		out = append(out, hk)
	}
	return out, nil
}

func (p *parser) chain(path string, raw any) (Chain, error) {
	if raw == nil {
		return Chain{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, configErrorf(path, "effect chain must be a list")
	}
	out := make(Chain, 0, len(list))
	for i, item := range list {
		at := fmt.Sprintf("%s[%d]", path, i)
		node, ok := asMap(item)
		if !ok {
			return nil, configErrorf(at, "effect must be a mapping")
		}
		eff, err := p.effect(at, node)
		if err != nil {
			return nil, err
		}
		out = append(out, eff)
	}
	return out, nil
}

func (p *parser) effect(path string, node map[string]any) (Effect, error) {
	if _, ok := node["ui"]; ok {
		return p.inline(path, node)
	}
	kind, _ := scalar(node["type"])
	if kind == "" {
		return nil, configErrorf(path, "effect has no type")
	}
	switch kind {
	case "condition":
		variable, _ := scalar(node["variable"])
		if variable == "" {
			return nil, configErrorf(path, "condition needs a variable")
		}
		onTrue, err := p.chain(path+".true", node["true"])
		if err != nil {
			return nil, err
		}
		onFalse, err := p.chain(path+".false", node["false"])
		if err != nil {
			return nil, err
		}
		return Condition{Variable: variable, True: onTrue, False: onFalse}, nil
	case "navigate":
		target, _ := scalar(node["target"])
		if target == "" {
			return nil, configErrorf(path, "navigate needs a target")
		}
		return Navigate{Target: target}, nil
	case "rotate_variable":
		target, _ := scalar(node["target"])
		if target == "" {
			return nil, configErrorf(path, "rotate_variable needs a target")
		}
		return RotateVariable{Target: target}, nil
	case "select":
		target, _ := scalar(node["target"])
		if target == "" {
			return nil, configErrorf(path, "select needs a target")
		}
		return Select{Target: target}, nil
	}
	if IsConcreteUI(kind) {
		return p.inline(path, node)
	}
	if _, ok := p.baseTypes[kind]; ok {
		return p.inline(path, node)
	}
	params := make(map[string]any, len(node))
	for k, v := range node {
		if k == "type" {
			continue
		}
		params[k] = v
	}
	return Custom{Name: kind, Params: params}, nil
}

func (p *parser) inline(path string, node map[string]any) (Effect, error) {
	screen, err := p.screen(path, node)
	if err != nil {
		return nil, err
	}
	return Inline{Screen: screen}, nil
}

func (p *parser) variables(path string, raw any) (map[string]Variable, error) {
	out := map[string]Variable{}
	if raw == nil {
		return out, nil
	}
	node, ok := asMap(raw)
	if !ok {
		return nil, configErrorf(path, "variables must be a mapping")
	}
	for name, rawDecl := range node {
		at := path + "." + name
		decl, ok := asMap(rawDecl)
		if !ok {
			return nil, configErrorf(at, "variable declaration must be a mapping")
		}
		def, ok := scalar(decl["default"])
		if !ok {
			return nil, configErrorf(at, "variable needs a default")
		}
		values, err := stringList(at+".values", decl["values"])
		if err != nil {
			return nil, err
		}
		v := Variable{Default: def, Values: values}
		v.Group, _ = scalar(decl["group"])
		v.Rename, _ = scalar(decl["rename"])
		out[name] = v
	}
	return out, nil
}

func (p *parser) formatters(path string, raw any) (map[string]Formatter, error) {
	out := map[string]Formatter{}
	if raw == nil {
		return out, nil
	}
	node, ok := asMap(raw)
	if !ok {
		return nil, configErrorf(path, "formatters must be a mapping")
	}
	for name, rawTable := range node {
		table, ok := asMap(rawTable)
		if !ok {
			return nil, configErrorf(path+"."+name, "formatter must map values to text")
		}
		f := make(Formatter, len(table))
		for value, text := range table {
			s, ok := scalar(text)
			if !ok {
				return nil, configErrorf(path+"."+name+"."+value, "formatter text must be a scalar")
			}
			f[value] = s
		}
		out[name] = f
	}
	return out, nil
}

// asMap accepts both map shapes yaml.v3 produces; mappings with non-string
// keys such as an unquoted true: decode to map[any]any.
func asMap(raw any) (map[string]any, bool) {
	switch t := raw.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			key, _ := scalar(k)
			out[key] = v
		}
		return out, true
	}
	return nil, false
}

func scalar(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

func stringList(path string, raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := scalar(raw); ok {
		return []string{s}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, configErrorf(path, "expected a list of strings")
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := scalar(item)
		if !ok {
			return nil, configErrorf(fmt.Sprintf("%s[%d]", path, i), "expected a string")
		}
		out = append(out, s)
	}
	return out, nil
}
