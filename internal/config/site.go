package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"prompt-library/internal/domain/entity"
)

// DefaultSitePath is read when SITE_CONFIG_PATH is unset.
const DefaultSitePath = "config/site.yaml"

// SiteConfig represents the site settings and the category seed.
type SiteConfig struct {
	Site struct {
		Name        string           `yaml:"name"`
		Description string           `yaml:"description"`
		Languages   []LanguageOption `yaml:"languages"`
	} `yaml:"site"`
	Categories []CategorySeed `yaml:"categories"`
}

// LanguageOption is one selectable UI language.
type LanguageOption struct {
	Code entity.Language `yaml:"code" json:"code"`
	Name string          `yaml:"name" json:"name"`
}

// CategorySeed is a category created at start-up when its name is unused.
type CategorySeed struct {
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

// DefaultSiteConfig returns the settings used when no file is present.
func DefaultSiteConfig() *SiteConfig {
	var c SiteConfig
	c.Site.Name = "Prompt Library"
	c.Site.Description = "A community library of AI prompts, articles and news."
	c.Site.Languages = []LanguageOption{
		{Code: entity.LanguageEnglish, Name: "English"},
		{Code: entity.LanguageArabic, Name: "العربية"},
	}
	return &c
}

// LoadSiteConfig loads site configuration from a YAML file. A missing file
// yields DefaultSiteConfig; unset fields keep their defaults.
// The path parameter is expected to come from a trusted source (environment or hardcoded default).
func LoadSiteConfig(path string) (*SiteConfig, error) {
	config := DefaultSiteConfig()

	// #nosec G304 -- path is provided by trusted source (env or default), not user input
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSiteConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validateSiteConfig validates the loaded configuration.
func validateSiteConfig(config *SiteConfig) error {
	if config.Site.Name == "" {
		return fmt.Errorf("site name is required")
	}

	if len(config.Site.Languages) == 0 {
		return fmt.Errorf("at least one language is required")
	}
	for _, l := range config.Site.Languages {
		if l.Code != entity.LanguageEnglish && l.Code != entity.LanguageArabic {
			return fmt.Errorf("unsupported language %q", l.Code)
		}
	}

	for i, c := range config.Categories {
		if _, err := entity.ParseCategoryKind(c.Kind); err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
		if c.Name == "" {
			return fmt.Errorf("categories[%d]: name is required", i)
		}
	}

	return nil
}

// SeedsFor returns the seeds of kind in file order.
func (c *SiteConfig) SeedsFor(kind entity.CategoryKind) []CategorySeed {
	var out []CategorySeed
	for _, s := range c.Categories {
		if s.Kind == string(kind) {
			out = append(out, s)
		}
	}
	return out
}
