package configx

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Abraxas-365/filex/fsx"
	"github.com/joho/godotenv"
)

// EnvSource loads configuration from environment variables.
// LOG_LEVEL becomes log.level; the prefix is stripped first.
type EnvSource struct {
	prefix   string
	priority int
	environ  func() []string
}

// NewEnvSource creates a new environment variable source
func NewEnvSource(prefix string, priority int) Source {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		environ:  os.Environ,
	}
}

// Load loads configuration values from environment variables
func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range s.environ() {
		key, val, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if key, ok = stripPrefix(key, s.prefix); ok {
			setNested(result, keyPath(key), convertValue(val))
		}
	}

	return result, nil
}

// Name returns the name of the source
func (s *EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.prefix)
}

// Priority returns the priority of the source
func (s *EnvSource) Priority() int {
	return s.priority
}

// DotEnvSource loads configuration from a .env file
type DotEnvSource struct {
	path     string
	prefix   string
	priority int
}

// NewDotEnvSource creates a new .env file source
func NewDotEnvSource(path, prefix string, priority int) Source {
	return &DotEnvSource{
		path:     path,
		prefix:   prefix,
		priority: priority,
	}
}

// Load parses the file with godotenv; keys are stripped and nested like EnvSource keys
func (s *DotEnvSource) Load() (map[string]any, error) {
	vars, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	result := make(map[string]any)
	for key, val := range vars {
		if key, ok := stripPrefix(key, s.prefix); ok {
			setNested(result, keyPath(key), convertValue(val))
		}
	}
	return result, nil
}

// Name returns the name of the source
func (s *DotEnvSource) Name() string {
	return fmt.Sprintf("dotenv(%s)", s.path)
}

// Priority returns the priority of the source
func (s *DotEnvSource) Priority() int {
	return s.priority
}

// FileSource loads a JSON, YAML or TOML document, chosen by extension
type FileSource struct {
	path     string
	priority int
	fs       *fsx.FS
}

// NewFileSource creates a file source on the OS filesystem
func NewFileSource(path string, priority int) Source {
	return NewFileSourceFS(fsx.Default(), path, priority)
}

// NewFileSourceFS creates a file source on the given fsx.FS
func NewFileSourceFS(fs *fsx.FS, path string, priority int) Source {
	return &FileSource{
		path:     path,
		priority: priority,
		fs:       fs,
	}
}

// Load reads the file fresh on every call so LoadAll picks up edits
func (s *FileSource) Load() (map[string]any, error) {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]any)
	if err := f.Decode(&result); err != nil {
		return nil, err
	}
	return normalizeMap(result), nil
}

// Name returns the name of the source
func (s *FileSource) Name() string {
	return fmt.Sprintf("file(%s)", s.path)
}

// Priority returns the priority of the source
func (s *FileSource) Priority() int {
	return s.priority
}

// MapSource loads configuration from a map
type MapSource struct {
	values   map[string]any
	name     string
	priority int
}

// NewMapSource creates a new map source
func NewMapSource(values map[string]any, name string, priority int) Source {
	return &MapSource{
		values:   deepCopyMap(values),
		name:     name,
		priority: priority,
	}
}

// Load loads configuration values from the map
func (s *MapSource) Load() (map[string]any, error) {
	return deepCopyMap(s.values), nil
}

// Name returns the name of the source
func (s *MapSource) Name() string {
	return s.name
}

// Priority returns the priority of the source
func (s *MapSource) Priority() int {
	return s.priority
}

// stripPrefix reports false for keys outside the prefix or with nothing after it
func stripPrefix(key, prefix string) (string, bool) {
	if !strings.HasPrefix(key, prefix) {
		return "", false
	}
	key = strings.TrimPrefix(key, prefix)
	return key, key != ""
}

// keyPath turns SERVER_PORT into [server port]
func keyPath(key string) []string {
	return strings.Split(strings.ToLower(key), "_")
}

func setNested(m map[string]any, parts []string, val any) {
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = val
}

// convertValue attempts to convert a string value to a more appropriate type.
// Integers parse with base prefixes, so 0600 is octal and 0x1f is hex.
func convertValue(val string) any {
	switch strings.ToLower(val) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	if i, err := strconv.ParseInt(val, 0, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	return val
}

// normalizeMap converts map[any]any left by some decoders into map[string]any
func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	}
	return v
}
