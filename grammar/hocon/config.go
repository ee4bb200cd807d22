package hocon

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type options struct {
	env      func(string) (string, bool)
	fallback *Config
}

// Option configures Load.
type Option func(*options)

// WithEnv sets the lookup used for substitutions missing from the
// document. The default is os.LookupEnv; nil disables the fallback.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) { o.env = lookup }
}

// WithFallback merges the document over cfg before resolving, so cfg
// supplies defaults and substitution targets.
func WithFallback(cfg *Config) Option {
	return func(o *options) { o.fallback = cfg }
}

// Config is a resolved configuration.
type Config struct {
	root *Object
}

// Load parses and resolves a document.
func Load(src string, opts ...Option) (*Config, error) {
	o := options{env: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}
	root, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse hocon: %w", err)
	}
	if o.fallback != nil {
		root = merge(o.fallback.root, root).(*Object)
	}
	r := &resolver{root: root, env: o.env, active: map[string]bool{}}
	v, _, err := r.resolve(root)
	if err != nil {
		return nil, fmt.Errorf("resolve hocon: %w", err)
	}
	return &Config{root: v.(*Object)}, nil
}

// LoadFile is Load on the contents of a file.
func LoadFile(name string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Load(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return cfg, nil
}

// Root returns the top-level object.
func (c *Config) Root() *Object { return c.root }

func (c *Config) String() string { return c.root.String() }

// WithFallback returns c with missing keys taken from other.
func (c *Config) WithFallback(other *Config) *Config {
	return &Config{root: merge(other.root, c.root).(*Object)}
}

// Get returns the value at a dotted path.
func (c *Config) Get(path string) (Value, error) {
	keys, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	var cur Value = c.root
	for _, k := range keys {
		obj, ok := cur.(*Object)
		if !ok {
			return nil, &PathError{Path: path, Err: ErrNotFound}
		}
		if cur, ok = obj.fields[k]; !ok {
			return nil, &PathError{Path: path, Err: ErrNotFound}
		}
	}
	return cur, nil
}

// Has reports whether path names a value.
func (c *Config) Has(path string) bool {
	_, err := c.Get(path)
	return err == nil
}

func wrongType(path string, v Value, want string) error {
	return &PathError{Path: path, Err: fmt.Errorf("%w: %s, want %s", ErrWrongType, kindOf(v), want)}
}

// GetString returns a scalar at path as a string.
func (c *Config) GetString(path string) (string, error) {
	v, err := c.Get(path)
	if err != nil {
		return "", err
	}
	if _, null := v.(Null); !null {
		if s, ok := text(v); ok {
			return s, nil
		}
	}
	return "", wrongType(path, v, "string")
}

// GetInt returns an integral number, or a string holding one, at path.
func (c *Config) GetInt(path string) (int, error) {
	f, s, err := c.number(path)
	if err != nil {
		return 0, err
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, &PathError{Path: path, Err: fmt.Errorf("%w: %s is not an int", ErrWrongType, s)}
	}
	return int(f), nil
}

// GetFloat returns a number, or a string holding one, at path.
func (c *Config) GetFloat(path string) (float64, error) {
	f, _, err := c.number(path)
	return f, err
}

func (c *Config) number(path string) (float64, string, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, "", err
	}
	var s string
	switch v := v.(type) {
	case Number:
		s = string(v)
	case String:
		s = string(v)
	default:
		return 0, "", wrongType(path, v, "number")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", wrongType(path, v, "number")
	}
	return f, s, nil
}

// GetBool returns a boolean at path. The strings yes, on, no and off are
// accepted too.
func (c *Config) GetBool(path string) (bool, error) {
	v, err := c.Get(path)
	if err != nil {
		return false, err
	}
	switch v := v.(type) {
	case Bool:
		return bool(v), nil
	case String:
		switch v {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, wrongType(path, v, "boolean")
}

// GetDuration returns a duration at path. A bare number counts
// milliseconds; a string is a number followed by an optional unit such as
// "ms", "s", "minutes" or "d".
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case Number:
		return ParseDuration(string(v))
	case String:
		d, err := ParseDuration(string(v))
		if err != nil {
			return 0, &PathError{Path: path, Err: err}
		}
		return d, nil
	}
	return 0, wrongType(path, v, "duration")
}

// GetConfig returns the object at path as a Config.
func (c *Config) GetConfig(path string) (*Config, error) {
	v, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, wrongType(path, v, "object")
	}
	return &Config{root: obj}, nil
}

// GetStringList returns an array of scalars at path as strings.
func (c *Config) GetStringList(path string) ([]string, error) {
	v, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	arr, ok := v.(Array)
	if !ok {
		return nil, wrongType(path, v, "array")
	}
	out := make([]string, len(arr))
	for i, e := range arr {
		s, ok := text(e)
		if !ok {
			return nil, wrongType(fmt.Sprintf("%s[%d]", path, i), e, "string")
		}
		out[i] = s
	}
	return out, nil
}
