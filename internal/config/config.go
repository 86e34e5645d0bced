// Package config loads and validates the blogpub configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pubErrors "github.com/nnduc/blogpub/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Generator GeneratorConfig `yaml:"generator"`
	History   HistoryConfig   `yaml:"history"`
	Daemon    DaemonConfig    `yaml:"daemon"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// ContentConfig locates the content store.
type ContentConfig struct {
	Dir           string `yaml:"dir"`
	ExcerptMarker string `yaml:"excerpt_marker,omitempty"`
}

// DeployConfig holds the publish target and staging directory settings.
type DeployConfig struct {
	RemoteURL  string `yaml:"remote_url"`
	Branch     string `yaml:"branch,omitempty"`
	StagingDir string `yaml:"staging_dir,omitempty"`
	CloneDepth int    `yaml:"clone_depth,omitempty"`
	// IgnoreCleanFailure restores the lenient variant where a failed
	// initial staging removal does not abort the run. Default is strict.
	IgnoreCleanFailure bool `yaml:"ignore_clean_failure,omitempty"`
}

// GeneratorConfig names the external site generator commands (argv form).
type GeneratorConfig struct {
	BuildCmd  []string `yaml:"build_cmd,omitempty"`
	DeployCmd []string `yaml:"deploy_cmd,omitempty"`
}

// HistoryConfig controls the publish-run history store.
type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// DaemonConfig configures scheduled publishing.
type DaemonConfig struct {
	Interval    Duration `yaml:"interval,omitempty"`
	Listen      string   `yaml:"listen,omitempty"`
	NATSURL     string   `yaml:"nats_url,omitempty"`
	NATSSubject string   `yaml:"nats_subject,omitempty"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "30m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if present; process env always wins.
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, pubErrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, pubErrors.Wrap(err, pubErrors.CategoryConfig, pubErrors.SeverityFatal, "read config file").
			WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, pubErrors.Wrap(err, pubErrors.CategoryConfig, pubErrors.SeverityFatal, "parse config file").
			WithContext("path", configPath)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "source/_posts"
	}
	if c.Content.ExcerptMarker == "" {
		c.Content.ExcerptMarker = "<!-- more -->"
	}
	if c.Deploy.Branch == "" {
		c.Deploy.Branch = "publishing"
	}
	if c.Deploy.StagingDir == "" {
		c.Deploy.StagingDir = ".deploy_git"
	}
	if c.Deploy.CloneDepth == 0 {
		c.Deploy.CloneDepth = 1
	}
	if len(c.Generator.BuildCmd) == 0 {
		c.Generator.BuildCmd = []string{"hexo", "generate"}
	}
	if len(c.Generator.DeployCmd) == 0 {
		c.Generator.DeployCmd = []string{"hexo", "deploy"}
	}
	if c.History.Path == "" {
		c.History.Path = ".blogpub/history.db"
	}
	if c.Daemon.Interval == 0 {
		c.Daemon.Interval = Duration(time.Hour)
	}
	if c.Daemon.Listen == "" {
		c.Daemon.Listen = ":9090"
	}
	if c.Daemon.NATSSubject == "" {
		c.Daemon.NATSSubject = "blogpub.publish"
	}
}

// ValidateForDeploy checks the fields that a publish run requires.
// Build-only commands do not need a remote.
func (c *Config) ValidateForDeploy() error {
	if c.Deploy.RemoteURL == "" {
		return pubErrors.ConfigRequired("deploy.remote_url")
	}
	if c.Deploy.CloneDepth < 1 {
		return pubErrors.ValidationFailed("deploy.clone_depth", fmt.Sprintf("must be at least 1, got %d", c.Deploy.CloneDepth))
	}
	if len(c.Generator.BuildCmd) == 0 {
		return pubErrors.ValidationFailed("generator.build_cmd", "must not be empty")
	}
	if len(c.Generator.DeployCmd) == 0 {
		return pubErrors.ValidationFailed("generator.deploy_cmd", "must not be empty")
	}
	return nil
}

// loadEnvFile loads environment variables from .env/.env.local files.
// It stops at the first file that parses; existing process variables are
// never overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
