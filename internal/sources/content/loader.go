package content

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// Loader reads a content file. An empty path selects the content compiled
// into the binary.
type Loader struct {
	filePath string
	lookup   func(string) (string, bool)
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: strings.TrimSpace(filePath),
		lookup:   os.LookupEnv,
	}
}

// Source describes where content comes from, for logs.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded"
	}
	return l.filePath
}

// Load reads and parses the content file.
func (l *Loader) Load() (Config, error) {
	data := defaultContent
	if l.filePath != "" {
		raw, err := os.ReadFile(l.filePath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read content file: %w", err)
		}
		data = raw
	}

	data = expandVariables(data, l.lookup)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse content yaml: %w", err)
	}
	return cfg, nil
}

var variablePattern = regexp.MustCompile(`\{\{\s*(REMOTELIFE_VAR_[A-Z0-9_]+)\s*\}\}`)

// expandVariables substitutes {{REMOTELIFE_VAR_...}} placeholders with the
// environment value. Unset variables become empty.
// Example: "email: {{REMOTELIFE_VAR_EMAIL}}" -> "email: ying@example.com"
func expandVariables(data []byte, lookup func(string) (string, bool)) []byte {
	return variablePattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := variablePattern.FindSubmatch(m)[1]
		v, _ := lookup(string(name))
		return []byte(v)
	})
}
