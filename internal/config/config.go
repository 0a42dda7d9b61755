package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mcncl/xon/internal/parser"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the xon tool
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Format FormatConfig `yaml:"format"`
	Query  QueryConfig  `yaml:"query"`
	Files  FilesConfig  `yaml:"files"`
	Dev    DevConfig    `yaml:"dev"`
}

// ParserConfig controls parsing limits
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// FormatConfig controls the fmt command
type FormatConfig struct {
	Write     bool `yaml:"write"`
	CheckOnly bool `yaml:"check_only"`
}

// QueryConfig controls path lookups and expression evaluation
type QueryConfig struct {
	NormalizeKeys bool              `yaml:"normalize_keys"`
	Expressions   map[string]string `yaml:"expressions"`
}

// FilesConfig selects which files fmt and check operate on
type FilesConfig struct {
	Exclude []string `yaml:"exclude"`

	// compiled regexes (not serialized)
	excludes []*regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
		Format: FormatConfig{
			Write:     false,
			CheckOnly: false,
		},
		Query: QueryConfig{
			NormalizeKeys: false,
			Expressions:   make(map[string]string),
		},
		Files: FilesConfig{
			Exclude: []string{},
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".xon.yml", ".xon.yaml", "xon.yml", "xon.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	c.Files.excludes = c.Files.excludes[:0]
	for _, pattern := range c.Files.Exclude {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		c.Files.excludes = append(c.Files.excludes, regex)
	}
	return nil
}

// ShouldSkipFile reports whether path matches one of the exclude patterns
func (c *Config) ShouldSkipFile(path string) bool {
	if len(c.Files.excludes) != len(c.Files.Exclude) {
		// Patterns were set after loading; compile lazily and ignore bad ones
		c.Files.excludes = nil
		for _, pattern := range c.Files.Exclude {
			if regex, err := regexp.Compile(pattern); err == nil {
				c.Files.excludes = append(c.Files.excludes, regex)
			}
		}
	}
	for _, regex := range c.Files.excludes {
		if regex.MatchString(path) {
			return true
		}
	}
	return false
}

// ParserOptions converts the parser section into parser options
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
}

// FindExpression returns a named CEL expression from the query section
func (c *Config) FindExpression(name string) (string, bool) {
	expr, ok := c.Query.Expressions[name]
	return expr, ok
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// A zero cliMaxDepth keeps the configured value.
func LoadConfigWithCLI(configPath string, cliMaxDepth int, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliMaxDepth != 0 {
		cfg.Parser.MaxDepth = cliMaxDepth
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
