// Package config loads and validates the moddocs site configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Modules ModulesConfig `yaml:"modules"`
}

// SiteConfig describes the documentation tree and output layout
type SiteConfig struct {
	Title            string `yaml:"title"`
	DocsDir          string `yaml:"docs_dir"`
	SiteDir          string `yaml:"site_dir"`
	UseDirectoryURLs *bool  `yaml:"use_directory_urls,omitempty"`
}

// ModulesConfig describes where module descriptors and core tag data live,
// relative to the docs directory.
type ModulesConfig struct {
	Dir          string `yaml:"dir"`
	CoreTagsFile string `yaml:"core_tags_file"`
}

// DirectoryURLs reports whether pages should render as directory indexes
// (foo.md -> foo/index.html). Defaults to true when unset.
func (s SiteConfig) DirectoryURLs() bool {
	if s.UseDirectoryURLs == nil {
		return true
	}
	return *s.UseDirectoryURLs
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Server Documentation"
	}
	if c.Site.DocsDir == "" {
		c.Site.DocsDir = "docs"
	}
	if c.Site.SiteDir == "" {
		c.Site.SiteDir = "site"
	}
	if c.Modules.Dir == "" {
		c.Modules.Dir = "3/modules"
	}
	if c.Modules.CoreTagsFile == "" {
		c.Modules.CoreTagsFile = "3/configuration/_data.yml"
	}
}

// Validate checks the configuration for values the build cannot proceed with.
func (c *Config) Validate() error {
	if c.Site.DocsDir == "" {
		return fmt.Errorf("site.docs_dir must not be empty")
	}
	if c.Site.SiteDir == "" {
		return fmt.Errorf("site.site_dir must not be empty")
	}
	if c.Site.DocsDir == c.Site.SiteDir {
		return fmt.Errorf("site.docs_dir and site.site_dir must differ")
	}
	if c.Modules.Dir == "" {
		return fmt.Errorf("modules.dir must not be empty")
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	falseVal := false
	exampleConfig := Config{
		Site: SiteConfig{
			Title:            "My IRC Server Documentation",
			DocsDir:          "docs",
			SiteDir:          "site",
			UseDirectoryURLs: &falseVal,
		},
		Modules: ModulesConfig{
			Dir:          "3/modules",
			CoreTagsFile: "3/configuration/_data.yml",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadEnvFile loads environment variables from .env/.env.local files.
// It attempts each supported filename in order and stops at the first
// successfully parsed file. Existing process variables are not overwritten.
func loadEnvFile() error {
	envPaths := []string{".env", ".env.local"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

// applyEnvOverrides lets MODDOCS_* variables override file-provided values.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("MODDOCS_DOCS_DIR"); v != "" {
		c.Site.DocsDir = v
	}
	if v := os.Getenv("MODDOCS_SITE_DIR"); v != "" {
		c.Site.SiteDir = v
	}
	if v := os.Getenv("MODDOCS_TITLE"); v != "" {
		c.Site.Title = v
	}
	if v := os.Getenv("MODDOCS_MODULES_DIR"); v != "" {
		c.Modules.Dir = v
	}
}
