package toggler

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the file representation of the [Toggler] delays. It decodes from
// YAML or JSON:
//
//	taskOneDelay: 150ms
//	taskTwoDelay: 300
//
// Bare numbers are milliseconds. Omitted delays keep their defaults.
type Config struct {
	TaskOneDelay *Delay `json:"taskOneDelay,omitempty" yaml:"taskOneDelay,omitempty"`
	TaskTwoDelay *Delay `json:"taskTwoDelay,omitempty" yaml:"taskTwoDelay,omitempty"`
}

// LoadConfig decodes a [Config] from r. An empty document yields the zero
// Config.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("toggler: decode config: %w", err)
	}
	return cfg, nil
}
