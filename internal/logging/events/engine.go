package events

import "github.com/atomicstack/update-all/internal/logging"

type EngineTracer struct{}

type EffectTracer struct{}

var (
	Engine = EngineTracer{}
	Effect = EffectTracer{}
)

func (EngineTracer) Enter(screen string, depth int) {
	logging.Trace("engine.enter", map[string]interface{}{"screen": screen, "depth": depth})
}

func (EngineTracer) Back(from, to string) {
	logging.Trace("engine.back", map[string]interface{}{"from": from, "to": to})
}

func (EngineTracer) Build(screen, ui string) {
	logging.Trace("engine.build", map[string]interface{}{"screen": screen, "ui": ui})
}

func (EngineTracer) Key(screen, key string) {
	logging.Trace("engine.key", map[string]interface{}{"screen": screen, "key": key})
}

func (EngineTracer) Clear(screen string) {
	logging.Trace("engine.clear", map[string]interface{}{"screen": screen})
}

func (EngineTracer) Exit(screen, reason string) {
	logging.Trace("engine.exit", map[string]interface{}{"screen": screen, "reason": reason})
}

func (EffectTracer) Navigate(target string) {
	logging.Trace("effect.navigate", map[string]interface{}{"target": target})
}

func (EffectTracer) Rotate(variable, from, to string) {
	logging.Trace("effect.rotate", map[string]interface{}{"variable": variable, "from": from, "to": to})
}

func (EffectTracer) Condition(variable string, value bool) {
	logging.Trace("effect.condition", map[string]interface{}{"variable": variable, "value": value})
}

func (EffectTracer) Custom(name string, params map[string]interface{}) {
	logging.Trace("effect.custom", map[string]interface{}{"name": name, "params": params})
}

func (EffectTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("effect.error", map[string]interface{}{"name": name, "error": err.Error()})
}
