package media

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetFiles embed.FS

// Preset describes a named delivery transformation.
type Preset struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Crop   string `yaml:"crop"`
}

// Transformation renders the preset as a delivery URL segment.
func (p Preset) Transformation() string {
	return fmt.Sprintf("w_%d,h_%d,c_%s", p.Width, p.Height, p.Crop)
}

// PresetRegistry holds the named transformation presets loaded from the
// embedded YAML file.
type PresetRegistry struct {
	presets map[string]Preset
	mu      sync.RWMutex
}

// NewPresetRegistry loads the embedded preset file.
func NewPresetRegistry() (*PresetRegistry, error) {
	data, err := presetFiles.ReadFile("presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read presets.yaml: %w", err)
	}

	var presets map[string]Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("unmarshal presets.yaml: %w", err)
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("presets.yaml defines no presets")
	}

	for name, p := range presets {
		if p.Width <= 0 || p.Height <= 0 || p.Crop == "" {
			return nil, fmt.Errorf("preset %q is incomplete", name)
		}
	}

	return &PresetRegistry{presets: presets}, nil
}

// Get returns a preset by name.
func (r *PresetRegistry) Get(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Names returns the defined preset names.
func (r *PresetRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	return names
}
