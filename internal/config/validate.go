// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ValidOutputFormats are the allowed output format values.
var ValidOutputFormats = []string{"text", "json", "yaml"}

// Validate validates the configuration and returns an error if invalid.
func Validate(cfg *Config) error {
	var errs []string

	// Validate node
	if cfg.Node.APIURL == "" {
		errs = append(errs, "api_url is required")
	} else if u, err := url.Parse(cfg.Node.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid api_url %q (expected http(s)://host[:port])", cfg.Node.APIURL))
	}
	if cfg.Node.Timeout < 0 {
		errs = append(errs, "timeout must be non-negative")
	}

	// Validate gas adjustment
	if cfg.Tx.GasAdjustment != "" {
		adj, err := sdkmath.LegacyNewDecFromStr(cfg.Tx.GasAdjustment)
		if err != nil || !adj.IsPositive() {
			errs = append(errs, fmt.Sprintf("invalid gas_adjustment %q (must be a positive decimal)", cfg.Tx.GasAdjustment))
		}
	}

	// Validate poll
	if cfg.Poll.Attempts < 1 {
		errs = append(errs, "poll attempts must be at least 1")
	}
	if cfg.Poll.Interval < 0 {
		errs = append(errs, "poll interval must be non-negative")
	}

	// Validate history
	if cfg.History.Enabled && cfg.History.Path == "" {
		errs = append(errs, "history path is required when history is enabled")
	}

	// Validate output format
	validFormat := false
	for _, format := range ValidOutputFormats {
		if cfg.Output.Format == format {
			validFormat = true
			break
		}
	}
	if !validFormat {
		errs = append(errs, fmt.Sprintf("invalid output format %q (must be one of: %s)",
			cfg.Output.Format, strings.Join(ValidOutputFormats, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
