package events

import "github.com/atomicstack/update-all/internal/logging"

type RunnerTracer struct{}

var Runner = RunnerTracer{}

func (RunnerTracer) Start(command string, args []string) {
	logging.Trace("runner.start", map[string]interface{}{"command": command, "args": args})
}

func (RunnerTracer) Finish(command string, exitCode int, err error) {
	payload := map[string]interface{}{"command": command, "exit_code": exitCode}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("runner.finish", payload)
}
