package settings

import (
	_ "embed"

	"github.com/atomicstack/update-all/internal/engine"
)

// DefaultEntry is the first screen of the bundled model.
const DefaultEntry = "main_menu"

//go:embed model.yaml
var defaultModel []byte

// DefaultModel parses the bundled settings model.
func DefaultModel() (*engine.Model, error) {
	return engine.LoadModel(defaultModel)
}

// LoadModel reads the model at path, or the bundled one when path is empty.
func LoadModel(path string) (*engine.Model, error) {
	if path == "" {
		return DefaultModel()
	}
	return engine.LoadModelFile(path)
}
