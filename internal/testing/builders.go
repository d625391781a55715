package testing

import (
	"maps"
	"path/filepath"

	"github.com/deep-archive/setup/internal/config"
)

// ModelsBaseURL is the host used for artifact URLs in built configs.
const ModelsBaseURL = "https://models.example.test"

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	root string
	cfg  config.Config
}

// NewConfigBuilder creates a builder whose paths all live under root. It
// starts from the built-in layout with artifact URLs pointing at
// ModelsBaseURL and no dependencies.
func NewConfigBuilder(root string) *ConfigBuilder {
	def := config.Default()
	b := &ConfigBuilder{root: root, cfg: *def}

	b.cfg.Directories = nil
	for _, dir := range def.Directories {
		b.cfg.Directories = append(b.cfg.Directories, filepath.Join(root, dir))
	}

	b.cfg.Artifacts = nil
	for _, a := range def.Artifacts {
		a.URL = ModelsBaseURL + "/" + filepath.Base(a.Destination)
		a.Destination = filepath.Join(root, a.Destination)
		b.cfg.Artifacts = append(b.cfg.Artifacts, a)
	}

	b.cfg.Dependencies = nil
	b.cfg.EnvFile = filepath.Join(root, config.DefaultEnvFile)
	return b
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	c := &ConfigBuilder{root: b.root, cfg: b.cfg}
	c.cfg.Directories = append([]string(nil), b.cfg.Directories...)
	c.cfg.Artifacts = append([]config.Artifact(nil), b.cfg.Artifacts...)
	c.cfg.Transports = append([]string(nil), b.cfg.Transports...)
	c.cfg.Dependencies = make([]config.Dependency, 0, len(b.cfg.Dependencies))
	for _, d := range b.cfg.Dependencies {
		d.Hints = maps.Clone(d.Hints)
		c.cfg.Dependencies = append(c.cfg.Dependencies, d)
	}
	return c
}

// Path joins elem onto the builder's root.
func (b *ConfigBuilder) Path(elem ...string) string {
	return filepath.Join(append([]string{b.root}, elem...)...)
}

// WithDirectories replaces the directories, relative to root.
func (b *ConfigBuilder) WithDirectories(dirs ...string) *ConfigBuilder {
	c := b.clone()
	c.cfg.Directories = nil
	for _, d := range dirs {
		c.cfg.Directories = append(c.cfg.Directories, b.Path(d))
	}
	return c
}

// WithArtifact appends an artifact whose destination is relative to root.
func (b *ConfigBuilder) WithArtifact(name, dest string) *ConfigBuilder {
	c := b.clone()
	c.cfg.Artifacts = append(c.cfg.Artifacts, config.Artifact{
		Name:        name,
		URL:         ModelsBaseURL + "/" + filepath.Base(dest),
		Destination: b.Path(dest),
	})
	return c
}

// WithoutArtifacts removes all artifacts.
func (b *ConfigBuilder) WithoutArtifacts() *ConfigBuilder {
	c := b.clone()
	c.cfg.Artifacts = nil
	return c
}

// WithDependency appends a probed tool with an optional set of hints.
func (b *ConfigBuilder) WithDependency(name string, hints map[string]string) *ConfigBuilder {
	c := b.clone()
	c.cfg.Dependencies = append(c.cfg.Dependencies, config.Dependency{
		Name:  name,
		Hints: maps.Clone(hints),
	})
	return c
}

// WithTransports sets the transport preference order.
func (b *ConfigBuilder) WithTransports(names ...string) *ConfigBuilder {
	c := b.clone()
	c.cfg.Transports = append([]string(nil), names...)
	return c
}

// WithS3Mirror configures the mirror transport.
func (b *ConfigBuilder) WithS3Mirror(m config.S3Mirror) *ConfigBuilder {
	c := b.clone()
	c.cfg.S3Mirror = m
	return c
}

// WithEnvFile sets the env file, relative to root. An empty name disables it.
func (b *ConfigBuilder) WithEnvFile(name string) *ConfigBuilder {
	c := b.clone()
	if name == "" {
		c.cfg.EnvFile = ""
	} else {
		c.cfg.EnvFile = b.Path(name)
	}
	return c
}

// WithMetricsFile sets the metrics textfile, relative to root.
func (b *ConfigBuilder) WithMetricsFile(name string) *ConfigBuilder {
	c := b.clone()
	c.cfg.MetricsFile = b.Path(name)
	return c
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	return &cfg
}
