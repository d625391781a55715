package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Default(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "duplicate destination",
			mutate: func(c *Config) {
				c.Artifacts[1].Destination = "models/../models/nsfw.onnx"
			},
			wantErr: "share destination",
		},
		{
			name: "duplicate artifact name",
			mutate: func(c *Config) {
				c.Artifacts[1].Name = c.Artifacts[0].Name
			},
			wantErr: "duplicate artifact name",
		},
		{
			name: "duplicate env key",
			mutate: func(c *Config) {
				c.Artifacts[1].EnvKey = c.Artifacts[0].EnvKey
			},
			wantErr: "share env key",
		},
		{
			name: "lowercase env key",
			mutate: func(c *Config) {
				c.Artifacts[0].EnvKey = "nsfw_model_path"
			},
			wantErr: "uppercase",
		},
		{
			name: "duplicate transport",
			mutate: func(c *Config) {
				c.Transports = []string{TransportCurl, TransportCurl}
			},
			wantErr: `duplicate transport "curl"`,
		},
		{
			name: "no transports",
			mutate: func(c *Config) {
				c.Transports = nil
			},
			wantErr: "Transports",
		},
		{
			name: "duplicate dependency",
			mutate: func(c *Config) {
				c.Dependencies = append(c.Dependencies, Dependency{Name: "ffmpeg"})
			},
			wantErr: `duplicate dependency "ffmpeg"`,
		},
		{
			name: "dependency name with path",
			mutate: func(c *Config) {
				c.Dependencies[0].Name = "/usr/bin/ffmpeg"
			},
			wantErr: "excludesall",
		},
		{
			name: "empty directory entry",
			mutate: func(c *Config) {
				c.Directories = append(c.Directories, "")
			},
			wantErr: "Directories[4]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NoArtifactsIsAllowed(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Artifacts = nil
	assert.NoError(t, cfg.Validate())
}
