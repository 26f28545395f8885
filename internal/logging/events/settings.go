package events

import "github.com/atomicstack/update-all/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Load(path string, exists bool, keys int) {
	logging.Trace("settings.load", map[string]interface{}{"path": path, "exists": exists, "keys": keys})
}

func (SettingsTracer) Save(path string, keys int) {
	logging.Trace("settings.save", map[string]interface{}{"path": path, "keys": keys})
}

func (SettingsTracer) NeedsSave(path string, dirty bool) {
	logging.Trace("settings.needs-save", map[string]interface{}{"path": path, "dirty": dirty})
}

func (SettingsTracer) Remove(path string) {
	logging.Trace("settings.remove", map[string]interface{}{"path": path})
}
