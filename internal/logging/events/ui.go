package events

import "github.com/atomicstack/update-all/internal/logging"

type UITracer struct{}

type BackendTracer struct{}

var (
	UI      = UITracer{}
	Backend = BackendTracer{}
)

func (UITracer) Frame(ui, header string, entries, actions int) {
	logging.Trace("ui.frame", map[string]interface{}{
		"ui":      ui,
		"header":  header,
		"entries": entries,
		"actions": actions,
	})
}

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (BackendTracer) KeyDropped(key string) {
	logging.Trace("backend.key-dropped", map[string]interface{}{"key": key})
}

func (BackendTracer) Done(exit string, err error) {
	payload := map[string]interface{}{"exit": exit}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.done", payload)
}
