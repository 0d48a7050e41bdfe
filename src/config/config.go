// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads validator settings from JSON or YAML files and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile = "X509_VALIDATOR_CONFIG_FILE"
	EnvCRLDir     = "X509_VALIDATOR_CRL_DIR"
	EnvAddr       = "X509_VALIDATOR_ADDR"
)

// Defaults applied when a value is missing or invalid.
const (
	DefaultTimeoutSeconds      = 30
	DefaultPort                = 443
	DefaultCRLDir              = "./crls"
	DefaultMemoryMaxSize       = 100
	DefaultCRLMaxResponseBytes = 32 << 20
	DefaultOCSPHash            = "sha256"
	DefaultAddr                = ":8080"
)

// format represents supported configuration file formats.
type format int

const (
	// formatJSON represents JSON configuration format (.json)
	formatJSON format = iota
	// formatYAML represents YAML configuration format (.yaml, .yml)
	formatYAML
)

// Config is the validator configuration.
//
// The file is located through the path given to [Load] or, when that is
// empty, the X509_VALIDATOR_CONFIG_FILE environment variable. Supported
// file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: settings for chain retrieval
	Defaults struct {
		// Timeout: dial and HTTP timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// Port: TLS port used when the URL has none
		Port int `json:"port" yaml:"port"`
	} `json:"defaults" yaml:"defaults"`

	// CRL: revocation list cache settings
	CRL struct {
		// CacheDir: directory holding downloaded lists
		CacheDir string `json:"cacheDir" yaml:"cacheDir"`
		// MemoryMaxSize: parsed lists kept in memory, negative disables the layer
		MemoryMaxSize int `json:"memoryMaxSize" yaml:"memoryMaxSize"`
		// MaxResponseBytes: largest accepted download
		MaxResponseBytes int64 `json:"maxResponseBytes" yaml:"maxResponseBytes"`
		// RespectNextUpdate: refetch a stored list once its nextUpdate has passed
		RespectNextUpdate bool `json:"respectNextUpdate" yaml:"respectNextUpdate"`
	} `json:"crl" yaml:"crl"`

	// OCSP: responder query settings
	OCSP struct {
		// Hash: request hash algorithm (sha256, sha1, sha384, sha512)
		Hash string `json:"hash" yaml:"hash"`
	} `json:"ocsp" yaml:"ocsp"`

	// Server: HTTP API settings
	Server struct {
		// Addr: listen address
		Addr string `json:"addr" yaml:"addr"`
	} `json:"server" yaml:"server"`

	// Metrics: Prometheus collection settings
	Metrics struct {
		// Disabled: stop recording; /metrics keeps serving the last values
		Disabled bool `json:"disabled" yaml:"disabled"`
	} `json:"metrics" yaml:"metrics"`
}

// Default returns a Config holding only default values.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from path, or from the file named by
// X509_VALIDATOR_CONFIG_FILE when path is empty, on top of the defaults.
//
// Configuration Priority:
//  1. Default values
//  2. Config file values (if a file is named)
//  3. Environment overrides (X509_VALIDATOR_CRL_DIR, X509_VALIDATOR_ADDR)
func Load(path string) (*Config, error) {
	c := &Config{}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshal(data, c, detectFormat(path)); err != nil {
			return nil, err
		}
	}

	if dir := os.Getenv(EnvCRLDir); dir != "" {
		c.CRL.CacheDir = dir
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}

	c.applyDefaults()
	return c, nil
}

// Timeout returns the configured dial and HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Defaults.Timeout) * time.Second
}

func (c *Config) applyDefaults() {
	if c.Defaults.Timeout <= 0 {
		c.Defaults.Timeout = DefaultTimeoutSeconds
	}
	if c.Defaults.Port <= 0 || c.Defaults.Port > 65535 {
		c.Defaults.Port = DefaultPort
	}
	if c.CRL.CacheDir == "" {
		c.CRL.CacheDir = DefaultCRLDir
	}
	if c.CRL.MemoryMaxSize == 0 {
		c.CRL.MemoryMaxSize = DefaultMemoryMaxSize
	}
	if c.CRL.MaxResponseBytes <= 0 {
		c.CRL.MaxResponseBytes = DefaultCRLMaxResponseBytes
	}
	if c.OCSP.Hash == "" {
		c.OCSP.Hash = DefaultOCSPHash
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

// detectFormat picks the decoder from the file extension, case-insensitively.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func unmarshal(data []byte, c *Config, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}
