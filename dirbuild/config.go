// Package dirbuild interprets a respack build directory: a respack.yaml
// naming the pack sources, the output, and how it is written.
package dirbuild

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/respack/filetree"
	"github.com/signadot/respack/manifest"
)

// BaseName is the configuration file name without extension.
const BaseName = "respack"

var ErrConfig = errors.New("bad build configuration")

type Manifest struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression,omitempty"`
}

// Config is a build configuration. Relative paths are relative to Root.
type Config struct {
	Root     string            `yaml:"-"`
	Source   string            `yaml:"source"`
	Out      string            `yaml:"out"`
	Indent   string            `yaml:"indent,omitempty"`
	Clear    bool              `yaml:"clear,omitempty"`
	Method   string            `yaml:"method,omitempty"`
	Lenient  bool              `yaml:"lenient,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	Manifest *Manifest         `yaml:"manifest,omitempty"`
}

// Open reads respack.{yaml,yml,json} in dir, in that order. Entries of env
// override the env section of the file.
func Open(dir string, env map[string]string) (*Config, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		p := filepath.Join(dir, BaseName+ext)
		d, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", p, err)
		}
		slog.Debug("build configuration", "path", p)
		return Parse(d, dir, env)
	}
	return nil, fmt.Errorf("could not find %s.{yaml,yml,json} in %q", BaseName, dir)
}

// OpenFile reads the configuration at p, rooted at its directory.
func OpenFile(p string, env map[string]string) (*Config, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", p, err)
	}
	return Parse(d, filepath.Dir(p), env)
}

// Parse decodes a configuration and expands ${NAME} references in its
// string fields, looking names up in the env section merged with env, and
// then in the process environment.
func Parse(d []byte, root string, env map[string]string) (*Config, error) {
	c := &Config{Root: root}
	if err := yaml.Unmarshal(d, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	c.Env = mergeEnv(c.Env, env)
	expand := func(s string) string {
		return os.Expand(s, func(name string) string {
			if v, ok := c.Env[name]; ok {
				return v
			}
			return os.Getenv(name)
		})
	}
	c.Source = expand(c.Source)
	c.Out = expand(c.Out)
	c.Method = expand(c.Method)
	if c.Manifest != nil {
		c.Manifest.Path = expand(c.Manifest.Path)
		c.Manifest.Compression = expand(c.Manifest.Compression)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func mergeEnv(dst, p map[string]string) map[string]string {
	res := make(map[string]string, len(dst)+len(p))
	for k, v := range dst {
		res[k] = v
	}
	for k, v := range p {
		res[k] = v
	}
	return res
}

func (c *Config) validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source is required", ErrConfig)
	}
	if c.Out == "" {
		return fmt.Errorf("%w: out is required", ErrConfig)
	}
	if _, err := c.CompressionMethod(); err != nil {
		return err
	}
	if c.Manifest != nil {
		if c.Manifest.Path == "" {
			return fmt.Errorf("%w: manifest.path is required", ErrConfig)
		}
		if _, err := manifest.ParseCompression(c.Manifest.Compression); err != nil {
			return fmt.Errorf("%w: manifest: %w", ErrConfig, err)
		}
	}
	return nil
}

func (c *Config) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

func (c *Config) SourcePath() string { return c.path(c.Source) }
func (c *Config) OutPath() string    { return c.path(c.Out) }

// IsZip reports whether the output is an archive rather than a directory.
func (c *Config) IsZip() bool {
	return strings.EqualFold(filepath.Ext(c.Out), ".zip")
}

// CompressionMethod maps the method name to an archive compression method.
// The default is deflate.
func (c *Config) CompressionMethod() (uint16, error) {
	switch c.Method {
	case "", "deflate":
		return filetree.Deflate, nil
	case "store":
		return filetree.Store, nil
	case "zstd":
		return filetree.Zstd, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrConfig, c.Method)
	}
}

// TreeOptions returns the options of the output tree.
func (c *Config) TreeOptions() []filetree.Option {
	m, _ := c.CompressionMethod()
	return []filetree.Option{filetree.Method(m), filetree.Clear(c.Clear), filetree.WithIndent(c.Indent)}
}

// ManifestPath returns the manifest output path, or "" if none is written.
func (c *Config) ManifestPath() string {
	if c.Manifest == nil {
		return ""
	}
	return c.path(c.Manifest.Path)
}
