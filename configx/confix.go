package configx

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Config represents the main configuration interface
type Config interface {
	// Get retrieves a configuration value by dotted key
	Get(key string) Value

	// Set sets a configuration value
	Set(key string, val any)

	// Has checks if a configuration key exists
	Has(key string) bool

	// AllSettings returns a copy of all settings
	AllSettings() map[string]any

	// LoadAll reloads all configuration sources
	LoadAll() error
}

// Source represents a configuration source
type Source interface {
	// Load loads configuration values from the source
	Load() (map[string]any, error)

	// Name returns the name of the source
	Name() string

	// Priority returns the priority of the source (higher values override lower)
	Priority() int
}

// Value wraps a configuration value and provides type conversion methods
type Value interface {
	IsSet() bool
	AsString() string
	AsStringDefault(def string) string
	AsInt() int
	AsIntDefault(def int) int
	AsBool() bool
	AsBoolDefault(def bool) bool
	AsDuration() time.Duration
	AsDurationDefault(def time.Duration) time.Duration

	// AsStruct unmarshals the value into a struct through its JSON form
	AsStruct(target any) error
}

const (
	PriorityDefault = 10
	PriorityDotEnv  = 15
	PriorityEnv     = 20
	PriorityFile    = 30
	PriorityMap     = 40
)

// configuration is the concrete implementation of Config
type configuration struct {
	sync.RWMutex
	values  map[string]any
	sources []Source
}

func newConfiguration() *configuration {
	return &configuration{values: make(map[string]any)}
}

// Get retrieves a configuration value by key
func (c *configuration) Get(key string) Value {
	c.RLock()
	defer c.RUnlock()

	return newValue(key, c.findValue(key))
}

// findValue walks nested maps along a dotted key
func (c *configuration) findValue(key string) any {
	var current any = c.values
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = m[part]; !ok {
			return nil
		}
	}
	return current
}

// Set sets a configuration value, creating intermediate maps
func (c *configuration) Set(key string, val any) {
	c.Lock()
	defer c.Unlock()

	parts := strings.Split(key, ".")
	current := c.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = val
}

// Has checks if a configuration key exists
func (c *configuration) Has(key string) bool {
	c.RLock()
	defer c.RUnlock()

	return c.findValue(key) != nil
}

// AllSettings returns all settings as a map
func (c *configuration) AllSettings() map[string]any {
	c.RLock()
	defer c.RUnlock()

	return deepCopyMap(c.values)
}

// LoadAll rebuilds the values from every source, lowest priority first.
// Values set with Set are discarded.
func (c *configuration) LoadAll() error {
	c.Lock()
	defer c.Unlock()

	sort.SliceStable(c.sources, func(i, j int) bool {
		return c.sources[i].Priority() < c.sources[j].Priority()
	})

	values := make(map[string]any)
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("error loading from source %s: %w", source.Name(), err)
		}
		mergeMapRecursive(values, data)
	}

	c.values = values
	return nil
}

// deepCopyMap creates a deep copy of a map
func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			result[k] = deepCopyMap(nested)
			continue
		}
		result[k] = v
	}
	return result
}

// mergeMapRecursive merges src into dst; nested maps merge, everything else is replaced
func mergeMapRecursive(dst, src map[string]any) {
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMapRecursive(dstMap, srcMap)
			continue
		}
		dst[k] = deepCopyMap(srcMap)
	}
}

//-----------------------------------------------------------------------------
// Value implementation
//-----------------------------------------------------------------------------

type value struct {
	key string
	val any
}

func newValue(key string, val any) Value {
	return &value{key: key, val: val}
}

func (v *value) IsSet() bool {
	return v.val != nil
}

func (v *value) AsString() string {
	return v.AsStringDefault("")
}

func (v *value) AsStringDefault(def string) string {
	if !v.IsSet() {
		return def
	}
	if s, ok := v.val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v.val)
}

func (v *value) AsInt() int {
	return v.AsIntDefault(0)
}

func (v *value) AsIntDefault(def int) int {
	switch val := v.val.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if i, err := strconv.ParseInt(val, 0, 64); err == nil {
			return int(i)
		}
	}
	return def
}

func (v *value) AsBool() bool {
	return v.AsBoolDefault(false)
}

func (v *value) AsBoolDefault(def bool) bool {
	switch val := v.val.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	case int:
		return val != 0
	}
	return def
}

func (v *value) AsDuration() time.Duration {
	return v.AsDurationDefault(0)
}

func (v *value) AsDurationDefault(def time.Duration) time.Duration {
	switch val := v.val.(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val * float64(time.Second))
	}
	return def
}

func (v *value) AsStruct(target any) error {
	if !v.IsSet() {
		return fmt.Errorf("value %q not set", v.key)
	}

	data, err := json.Marshal(v.val)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to JSON: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal configuration to struct: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// Builder
//-----------------------------------------------------------------------------

// Builder provides a fluent API for building configuration
type Builder struct {
	sources     []Source
	optional    map[Source]bool
	requiredEnv []string
	validators  []func(Config) error
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{optional: make(map[Source]bool)}
}

// WithDefaults adds default values at the lowest priority
func (b *Builder) WithDefaults(defaults map[string]any) *Builder {
	b.sources = append(b.sources, NewMapSource(defaults, "defaults", PriorityDefault))
	return b
}

// FromEnv adds an environment variable source
func (b *Builder) FromEnv(prefix string) *Builder {
	b.sources = append(b.sources, NewEnvSource(prefix, PriorityEnv))
	return b
}

// FromDotEnv adds a .env file source below the process environment.
// Keys are filtered and stripped by prefix like FromEnv. A missing file is skipped.
func (b *Builder) FromDotEnv(path, prefix string) *Builder {
	src := NewDotEnvSource(path, prefix, PriorityDotEnv)
	b.sources = append(b.sources, src)
	b.optional[src] = true
	return b
}

// FromFile adds a JSON, YAML or TOML file source. The file must exist.
func (b *Builder) FromFile(path string) *Builder {
	b.sources = append(b.sources, NewFileSource(path, PriorityFile))
	return b
}

// FromMap adds a map source at the highest priority
func (b *Builder) FromMap(values map[string]any, name string) *Builder {
	b.sources = append(b.sources, NewMapSource(values, name, PriorityMap))
	return b
}

// RequireEnv specifies environment variables that must be present
func (b *Builder) RequireEnv(envVars ...string) *Builder {
	b.requiredEnv = append(b.requiredEnv, envVars...)
	return b
}

// WithValidation adds a check run once the configuration is loaded
func (b *Builder) WithValidation(validator func(Config) error) *Builder {
	b.validators = append(b.validators, validator)
	return b
}

// Build loads every source and runs the validators
func (b *Builder) Build() (Config, error) {
	var missing []string
	for _, env := range b.requiredEnv {
		if _, ok := os.LookupEnv(env); !ok {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg := newConfiguration()
	for _, src := range b.sources {
		if b.optional[src] && !sourceAvailable(src) {
			continue
		}
		cfg.sources = append(cfg.sources, src)
	}
	if err := cfg.LoadAll(); err != nil {
		return nil, err
	}

	for _, validate := range b.validators {
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

func sourceAvailable(src Source) bool {
	_, err := src.Load()
	return err == nil
}
