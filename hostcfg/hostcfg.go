// Package hostcfg declares the reference host's optional YAML session
// file: timeout, initial wrap offset, initial program path, and stdio
// bindings, loaded once at startup before the interpreter runs.
package hostcfg

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Session is the declarative startup configuration for the reference
// CLI host.
type Session struct {
	// TimeoutSeconds bounds wall-clock run time; zero means unbounded.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// WrapOffset seeds the IP's wrap policy before the program runs.
	WrapOffset byte `yaml:"wrap_offset"`
	// Program names the initial .bfx file (without extension) to load
	// into program 0.
	Program string `yaml:"program"`
	// InputFile and OutputFile, if set, rebind stdio before the run
	// starts; "-" (or unset) keeps the host's own stdio.
	InputFile  string `yaml:"input_file"`
	OutputFile string `yaml:"output_file"`
}

// Load reads and parses a Session from a YAML file at path.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
