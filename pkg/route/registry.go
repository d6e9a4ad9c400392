package route

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// Supported task kinds in route files.
	TaskPlain      = "plain"
	TaskParameters = "parameters"
)

// registryFile represents the structure of the routes configuration file.
type registryFile struct {
	Routes []Config `json:"routes" yaml:"routes"`
}

// Config represents a single route entry declared in config files.
type Config struct {
	ID             string            `json:"id" yaml:"id"`
	BaseAddress    string            `json:"base_address" yaml:"base_address"`
	Path           string            `json:"path" yaml:"path"`
	Method         string            `json:"method" yaml:"method"`
	Task           string            `json:"task" yaml:"task"`
	BodyEncoding   string            `json:"body_encoding" yaml:"body_encoding"`
	BodyParameters map[string]any    `json:"body_parameters" yaml:"body_parameters"`
	URLParameters  map[string]string `json:"url_parameters" yaml:"url_parameters"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	Enabled        *bool             `json:"enabled" yaml:"enabled"`
}

// EnabledValue returns the enabled flag defaulting to true.
func (c Config) EnabledValue() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// Endpoint materializes the declared route as a typed descriptor.
func (c Config) Endpoint() (Endpoint, error) {
	ep := Endpoint{
		BaseAddress: c.BaseAddress,
		Path:        c.Path,
		Method:      c.Method,
		Headers:     c.Headers,
	}

	switch c.Task {
	case "", TaskPlain:
		ep.Task = PlainTask{}
	case TaskParameters:
		enc, err := ParseBodyEncoding(c.BodyEncoding)
		if err != nil {
			return Endpoint{}, fmt.Errorf("route %q: %w", c.ID, err)
		}
		ep.Task = ParametersTask{
			BodyParameters: c.BodyParameters,
			BodyEncoding:   enc,
			URLParameters:  c.URLParameters,
		}
	default:
		return Endpoint{}, fmt.Errorf("route %q has unknown task %q", c.ID, c.Task)
	}

	return ep, nil
}

// Registry materializes route definitions loaded from config files.
type Registry struct {
	mu     sync.RWMutex
	routes []Config
	idx    map[string]Config
}

// LoadRegistry loads the route registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("routes file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open routes file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Routes) == 0 {
		return nil, errors.New("routes file contains no routes entries")
	}

	reg := &Registry{
		routes: make([]Config, len(fileReg.Routes)),
		idx:    make(map[string]Config, len(fileReg.Routes)),
	}

	for i := range fileReg.Routes {
		cfg := sanitizeConfig(fileReg.Routes[i])
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("routes[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate route id %q", cfg.ID)
		}
		reg.routes[i] = cfg
		reg.idx[cfg.ID] = cfg
	}

	return reg, nil
}

// parseRegistry attempts to decode the routes file content.
func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("routes file format not recognized (expected YAML or JSON)")
}

// sanitizeConfig trims and normalizes the route config fields.
func sanitizeConfig(cfg Config) Config {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.BaseAddress = strings.TrimSpace(cfg.BaseAddress)
	cfg.Path = strings.TrimSpace(cfg.Path)
	cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
	cfg.Task = strings.ToLower(strings.TrimSpace(cfg.Task))
	cfg.BodyEncoding = strings.ToLower(strings.TrimSpace(cfg.BodyEncoding))
	cfg.Headers = sanitizeHeaders(cfg.Headers)

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}
	return cfg
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	if cfg.BaseAddress == "" {
		return fmt.Errorf("base_address is required for route %q", cfg.ID)
	}
	if cfg.Task != "" && cfg.Task != TaskPlain && cfg.Task != TaskParameters {
		return fmt.Errorf("unknown task %q for route %q", cfg.Task, cfg.ID)
	}
	if cfg.BodyEncoding != "" {
		if _, err := ParseBodyEncoding(cfg.BodyEncoding); err != nil {
			return fmt.Errorf("route %q: %w", cfg.ID, err)
		}
	}
	return nil
}

// ByID returns the route config by id.
func (r *Registry) ByID(id string) (Config, bool) {
	if r == nil {
		return Config{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Config{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[id]
	return cfg, ok
}

// All returns all configured routes.
func (r *Registry) All() []Config {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Config, len(r.routes))
	copy(out, r.routes)
	return out
}

// Enabled returns routes that are enabled.
func (r *Registry) Enabled() []Config {
	if r == nil {
		return nil
	}

	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Config, 0, len(all))
	for _, cfg := range all {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}
