// Package config loads llmsmd settings from flags, environment variables and
// an optional .llmsmd.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/llmsmd/internal/build"
	"github.com/jmylchreest/llmsmd/internal/index"
	"github.com/jmylchreest/llmsmd/pkg/llms"
)

// EnvPrefix prefixes environment overrides (LLMSMD_SITE_URL, ...).
const EnvPrefix = "LLMSMD"

// Config is the complete build configuration.
type Config struct {
	Input  string `mapstructure:"input" yaml:"input" validate:"required"`
	Output string `mapstructure:"output" yaml:"output" validate:"required"`

	SiteURL     string `mapstructure:"site_url" yaml:"site_url" validate:"omitempty,url"`
	Title       string `mapstructure:"title" yaml:"title"`
	Description string `mapstructure:"description" yaml:"description"`
	Details     string `mapstructure:"details" yaml:"details"`

	// TitleSeparator strips site suffixes from page titles.
	TitleSeparator string `mapstructure:"title_separator" yaml:"title_separator"`

	ContentSelector string   `mapstructure:"content_selector" yaml:"content_selector" validate:"required"`
	Include         []string `mapstructure:"include" yaml:"include"`
	Exclude         []string `mapstructure:"exclude" yaml:"exclude"`

	// Ignore selectors are removed from every page.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	Minify Minify `mapstructure:"minify" yaml:"minify"`

	Concurrency int `mapstructure:"concurrency" yaml:"concurrency" validate:"min=1,max=64"`
}

// Minify holds the extra reductions applied to llms-small.txt.
type Minify struct {
	Ignore        []string `mapstructure:"ignore" yaml:"ignore"`
	OnlyStructure bool     `mapstructure:"only_structure" yaml:"only_structure"`
}

// Default values.
var (
	DefaultIgnore       = []string{"header", "nav", "footer", ".no-llms", ".sl-anchor-link"}
	DefaultMinifyIgnore = []string{"details", "aside", ".expressive-code .copy"}
)

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "dist")
	v.SetDefault("output", "dist")
	// Keys without a default are invisible to environment lookups.
	v.SetDefault("site_url", "")
	v.SetDefault("title", "")
	v.SetDefault("description", "")
	v.SetDefault("details", "")
	v.SetDefault("title_separator", " | ")
	v.SetDefault("content_selector", "main")
	v.SetDefault("ignore", DefaultIgnore)
	v.SetDefault("minify.ignore", DefaultMinifyIgnore)
	v.SetDefault("minify.only_structure", false)
	v.SetDefault("concurrency", 4)
}

// Setup prepares v to read the config file, environment and defaults. An
// explicit file must exist; otherwise .llmsmd.yaml is looked up in the
// working directory and then $HOME.
func Setup(v *viper.Viper, file, home string) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".llmsmd")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the config file set up by Setup. A missing file is not an
// error unless it was named explicitly.
func ReadFile(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", e.Field(), formatValidationError(e)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// BuildOptions maps the configuration onto build options.
func (c *Config) BuildOptions() build.Options {
	return build.Options{
		Input:  c.Input,
		Output: c.Output,
		Meta: index.Meta{
			Title:       c.Title,
			Description: c.Description,
			Details:     c.Details,
			SiteURL:     c.SiteURL,
		},
		TitleSeparator:  c.TitleSeparator,
		ContentSelector: c.ContentSelector,
		Include:         c.Include,
		Exclude:         c.Exclude,
		Full:            llms.Options{IgnoreSelectors: c.Ignore},
		Small: llms.Options{
			IgnoreSelectors: c.Minify.Ignore,
			OnlyStructure:   c.Minify.OnlyStructure,
		},
		Concurrency: c.Concurrency,
	}
}
