package engine

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigError through errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports a malformed model. These are authoring bugs, never user
// input problems, so callers should let them abort the program.
type ConfigError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path == "" {
		return "configuration error: " + msg
	}
	return fmt.Sprintf("configuration error at %s: %s", e.Path, msg)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(path, format string, args ...any) error {
	return &ConfigError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
