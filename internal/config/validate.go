package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate rejects enumerated settings outside their supported values.
func (c *Config) Validate() error {
	var errs []error
	check := func(key, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("config: %s %q is not one of %s", key, value, strings.Join(allowed, ", ")))
		}
	}
	check("output", c.Output, OutputFormats)
	check("log.level", strings.ToLower(c.Log.Level), LogLevels)
	check("log.format", strings.ToLower(c.Log.Format), LogFormats)

	switch strings.ToLower(c.Render.Method) {
	case "get", "post":
	default:
		errs = append(errs, fmt.Errorf("config: render.method %q must be get or post", c.Render.Method))
	}
	return errors.Join(errs...)
}
