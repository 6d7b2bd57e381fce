package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no config path is given.
const DefaultFile = "promptgen.yaml"

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultPromptsDir   = "prompts"
	DefaultTemplatesDir = "prompt_templates"
	DefaultOutputsDir   = "outputs"
	DefaultAdapter      = "bedrock"
	DefaultRegion       = "us-east-1"
	DefaultS3Endpoint   = "s3.amazonaws.com"
)

// Run is the configuration of a single pipeline run. It is built once at
// startup and handed to every stage by value.
type Run struct {
	Tier      Tier
	Bucket    string
	Dirs      Dirs
	Inference Inference
	S3        S3
	Aliases   ModelAliases
}

// Dirs holds the local input and output directories.
type Dirs struct {
	Prompts   string `yaml:"prompts"`
	Templates string `yaml:"templates"`
	Outputs   string `yaml:"outputs"`
}

// Inference selects and configures the model backend.
type Inference struct {
	Adapter string `yaml:"adapter"`
	Model   string `yaml:"model"`
	Region  string `yaml:"region"`

	// API keys are only taken from the environment.
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
	GoogleAPIKey    string `yaml:"-"`
}

// S3 configures the object store connection.
type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Insecure  bool   `yaml:"insecure"`
	AccessKey string `yaml:"access_key"` // supports ${VAR}
	SecretKey string `yaml:"secret_key"` // supports ${VAR}
}

// FileConfig represents the structure of promptgen.yaml.
type FileConfig struct {
	Dirs      Dirs              `yaml:"dirs"`
	Inference Inference         `yaml:"inference"`
	S3        S3                `yaml:"s3"`
	Buckets   map[string]string `yaml:"buckets"`
	Aliases   ModelAliases      `yaml:"aliases"`
}

// Load builds the run configuration for tier. path may be empty, in which case
// DefaultFile is used if it exists. Environment variables take precedence over
// file configuration.
func Load(tier Tier, path string) (Run, error) {
	tier, err := ParseTier(string(tier))
	if err != nil {
		return Run{}, err
	}

	fileConfig, err := loadFileConfig(path)
	if err != nil {
		return Run{}, err
	}

	region := getEnvOrDefault("AWS_REGION", fileConfig.Inference.Region)
	if region == "" {
		region = DefaultRegion
	}

	run := Run{
		Tier:   tier,
		Bucket: getEnvOrDefault(tier.BucketEnvVar(), fileConfig.Buckets[tier.String()]),
		Dirs: Dirs{
			Prompts:   valueOrDefault(fileConfig.Dirs.Prompts, DefaultPromptsDir),
			Templates: valueOrDefault(fileConfig.Dirs.Templates, DefaultTemplatesDir),
			Outputs:   valueOrDefault(fileConfig.Dirs.Outputs, DefaultOutputsDir),
		},
		Inference: Inference{
			Adapter:         valueOrDefault(fileConfig.Inference.Adapter, DefaultAdapter),
			Model:           fileConfig.Inference.Model,
			Region:          region,
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		},
		S3: S3{
			Endpoint:  valueOrDefault(fileConfig.S3.Endpoint, DefaultS3Endpoint),
			Region:    valueOrDefault(fileConfig.S3.Region, region),
			Insecure:  fileConfig.S3.Insecure,
			AccessKey: fileConfig.S3.AccessKey,
			SecretKey: fileConfig.S3.SecretKey,
		},
		Aliases: fileConfig.Aliases,
	}

	return run, nil
}

// RemoteKey returns the object key an output file is published under.
func (r Run) RemoteKey(outputFile string) string {
	return r.Tier.KeyPrefix() + filepath.ToSlash(outputFile)
}

// Model returns the configured model with aliases resolved.
func (r Run) Model() string {
	return r.Aliases.Resolve(r.Inference.Model)
}

// loadFileConfig reads the config file. A missing default file yields an empty
// config; a missing explicit file is an error.
func loadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func valueOrDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
