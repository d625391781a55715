package config

import "strings"

// DefaultConfigFilename is the configuration file looked up in the invocation directory.
const DefaultConfigFilename = "deep-archive-setup.yaml"

// Transport names accepted in [Config.Transports].
const (
	TransportCurl = "curl"
	TransportWget = "wget"
	TransportS3   = "s3"
)

// Config is the complete bootstrap configuration.
type Config struct {
	// Directories must exist as directories after provisioning.
	Directories []string `yaml:"directories" validate:"required,min=1,dive,required"`

	// Dependencies are external executables probed on PATH. Missing ones only warn.
	Dependencies []Dependency `yaml:"dependencies" validate:"dive"`

	// Artifacts are fetched in order unless their destination already exists.
	Artifacts []Artifact `yaml:"artifacts" validate:"dive"`

	// Transports is the preference order; the first available one is used for the whole run.
	Transports []string `yaml:"transports" env:"DEEP_ARCHIVE_TRANSPORTS" env-separator:"," validate:"required,min=1,dive,oneof=curl wget s3"`

	S3Mirror S3Mirror `yaml:"s3_mirror"`

	// EnvFile receives the absolute model paths once all artifacts are present.
	// Empty disables writing it.
	EnvFile string `yaml:"env_file" env:"DEEP_ARCHIVE_ENV_FILE"`

	// MetricsFile, when set, receives a Prometheus textfile with the run outcome.
	MetricsFile string `yaml:"metrics_file,omitempty" env:"DEEP_ARCHIVE_METRICS_FILE"`
}

// Dependency is an external executable the pipeline shells out to.
type Dependency struct {
	Name        string `yaml:"name" validate:"required,excludesall=/"`
	Description string `yaml:"description,omitempty"`
	InstallURL  string `yaml:"install_url,omitempty" validate:"omitempty,url"`

	// Hints maps a platform identifier ("darwin", "linux/debian", ...) to an install command.
	Hints map[string]string `yaml:"hints,omitempty"`
}

// Artifact is a binary file fetched once from URL into Destination.
type Artifact struct {
	Name        string `yaml:"name" validate:"required"`
	URL         string `yaml:"url" validate:"required,url"`
	Destination string `yaml:"destination" validate:"required"`

	// EnvKey names the variable written to the env file for this artifact.
	EnvKey string `yaml:"env_key,omitempty" validate:"omitempty,uppercase"`
}

// S3Mirror configures the optional S3-compatible mirror transport.
// Objects are looked up as <prefix>/<basename of the artifact destination>.
type S3Mirror struct {
	Endpoint  string `yaml:"endpoint,omitempty" env:"DEEP_ARCHIVE_S3_ENDPOINT" validate:"omitempty,url"`
	Region    string `yaml:"region,omitempty" env:"DEEP_ARCHIVE_S3_REGION"`
	Bucket    string `yaml:"bucket,omitempty" env:"DEEP_ARCHIVE_S3_BUCKET"`
	Prefix    string `yaml:"prefix,omitempty" env:"DEEP_ARCHIVE_S3_PREFIX"`
	PathStyle bool   `yaml:"path_style,omitempty" env:"DEEP_ARCHIVE_S3_PATH_STYLE"`

	// Credentials are only read from the environment.
	AccessKey string `yaml:"-" env:"DEEP_ARCHIVE_S3_ACCESS_KEY"`
	SecretKey string `yaml:"-" env:"DEEP_ARCHIVE_S3_SECRET_KEY"`
}

// Enabled reports whether the mirror has everything it needs to be used.
func (m S3Mirror) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != "" && m.AccessKey != "" && m.SecretKey != ""
}

// ObjectKey returns the mirror key for a file name.
func (m S3Mirror) ObjectKey(filename string) string {
	prefix := strings.Trim(m.Prefix, "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}

// ModelEnv returns the env-file entries for artifacts that declare an EnvKey.
func (c *Config) ModelEnv() map[string]string {
	env := make(map[string]string)
	for _, a := range c.Artifacts {
		if a.EnvKey != "" {
			env[a.EnvKey] = a.Destination
		}
	}
	return env
}
