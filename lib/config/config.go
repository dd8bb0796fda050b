// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Warden.
//
// Configuration is loaded from a single YAML file specified by:
//   - WARDEN_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/warden-project/warden/lib/origin"
)

// Config is the master configuration for a Warden engine.
type Config struct {
	// Policy is the path to the baseline policy document (JSONC).
	Policy string `yaml:"policy"`

	// Marker is the property key whose presence during policy
	// construction triggers the augmented grant for the synthetic
	// insecure-plugin origin.
	Marker string `yaml:"marker"`

	// SyntheticLocation is the "any old codebase" location the delta
	// is computed for. Empty selects the engine default.
	SyntheticLocation string `yaml:"synthetic_location,omitempty"`

	// Heuristics are location substring patterns identifying generated
	// test-compilation output. Omitted selects the engine default;
	// an explicit empty list disables the heuristic layer.
	Heuristics []string `yaml:"heuristics,omitempty"`

	// Properties seeds the process property table used for policy
	// ${property} expansion. These are permanent properties, distinct
	// from the transient marker binding.
	Properties map[string]string `yaml:"properties,omitempty"`

	// Trusted declares the trusted-infrastructure origins for the
	// exclusion set.
	Trusted []TrustedOrigin `yaml:"trusted"`
}

// TrustedOrigin declares one trusted-infrastructure origin.
type TrustedOrigin struct {
	// Name labels the origin for diagnostics ("core", "test-runner",
	// "assertion-library", ...). Not used in equality.
	Name string `yaml:"name"`

	// Location is the origin's code location.
	Location string `yaml:"location"`

	// Certificates are optional hex-encoded BLAKE3 fingerprints of
	// the origin's signing certificates.
	Certificates []string `yaml:"certificates,omitempty"`
}

// Load loads configuration from the WARDEN_CONFIG environment
// variable.
//
// This is the only way to load configuration without an explicit
// path. There are no fallbacks or defaults — if WARDEN_CONFIG is not
// set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("WARDEN_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("WARDEN_CONFIG environment variable not set; " +
			"set it to the path of your warden.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Policy == "" {
		return fmt.Errorf("policy path is required")
	}
	if c.Marker == "" {
		return fmt.Errorf("marker key is required")
	}
	for i, trusted := range c.Trusted {
		if trusted.Location == "" {
			return fmt.Errorf("trusted origin %d (%s): location is required", i, trusted.Name)
		}
	}
	return nil
}

// TrustedOrigins resolves the declared trusted origins into Origin
// values, implementing origin.IdentitySource. A declaration that
// cannot be resolved (bad fingerprint encoding, empty location) is an
// error: an incomplete exclusion set must never be built silently.
func (c *Config) TrustedOrigins() ([]origin.Origin, error) {
	out := make([]origin.Origin, 0, len(c.Trusted))
	for i, trusted := range c.Trusted {
		fingerprints := make([]origin.Fingerprint, 0, len(trusted.Certificates))
		for _, encoded := range trusted.Certificates {
			fp, err := origin.ParseFingerprint(encoded)
			if err != nil {
				return nil, fmt.Errorf("trusted origin %d (%s): %w", i, trusted.Name, err)
			}
			fingerprints = append(fingerprints, fp)
		}
		o, err := origin.New(trusted.Location, fingerprints...)
		if err != nil {
			return nil, fmt.Errorf("trusted origin %d (%s): %w", i, trusted.Name, err)
		}
		out = append(out, o)
	}
	return out, nil
}
