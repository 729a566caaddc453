package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStash(); err != nil {
		return err
	}
	if err := c.validateTemplates(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStash() error {
	if strings.TrimSpace(c.Stash.URL) == "" {
		return errors.New("stash.url must be set")
	}
	parsed, err := url.Parse(c.Stash.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("stash.url is not a valid URL: %q", c.Stash.URL)
	}
	return nil
}

func (c *Config) validateTemplates() error {
	if strings.Count(c.Templates.Directory, "{") != strings.Count(c.Templates.Directory, "}") {
		return errors.New("templates.directory has unbalanced optional-section braces")
	}
	if strings.Count(c.Templates.Filename, "{") != strings.Count(c.Templates.Filename, "}") {
		return errors.New("templates.filename has unbalanced optional-section braces")
	}
	if c.Templates.Filename != "" {
		suffix := strings.TrimSpace(c.Templates.DuplicateSuffix)
		if suffix == "" {
			return errors.New("templates.duplicate_suffix must be set when templates.filename is set")
		}
		// Without $index$ the collision loop would recompute the same
		// candidate forever.
		if !strings.Contains(suffix, "$index$") {
			return errors.New("templates.duplicate_suffix must reference $index$")
		}
	}
	if c.Templates.DirectorySecondary != "" && c.Templates.Directory == "" {
		return errors.New("templates.directory_secondary requires templates.directory")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
