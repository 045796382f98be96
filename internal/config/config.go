// Package config loads and validates grove.yaml, the per-repository
// configuration unit. The file is declarative YAML decoded strictly, so an
// unknown key is a load error rather than a silently ignored typo. Grove
// never evaluates code from the repository in-process; the only extension
// points are the declared setup subprocess hooks.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/logger"
)

// FileName is the configuration file inside the config directory.
const FileName = "grove.yaml"

// DefaultSessionPrefix namespaces grove's zellij sessions.
const DefaultSessionPrefix = "grove-"

// DefaultLayoutFile is the zellij layout scaffolded by init.
const DefaultLayoutFile = "layout.kdl"

// Port allocation modes.
const (
	PortModeSingle = "single"
	PortModePair   = "pair"
)

// Config is the top-level grove.yaml configuration.
type Config struct {
	// Layout is the zellij layout path, relative to the config directory.
	// Empty means new sessions launch without a layout flag.
	Layout string `yaml:"layout"`

	// SessionPrefix prefixes the label to form the session name.
	SessionPrefix string `yaml:"session_prefix"`

	Ports PortsConfig `yaml:"ports"`

	// Env maps environment keys to Go template values rendered into the
	// worktree's .env.local on every create.
	Env map[string]string `yaml:"env"`

	Setup SetupConfig `yaml:"setup"`

	// Notifications enables a desktop notification when a session ends.
	Notifications bool `yaml:"notifications"`
}

// PortsConfig bounds the free-port scan. Mode "single" allocates one port;
// "pair" allocates two numerically adjacent ports.
type PortsConfig struct {
	Mode string `yaml:"mode"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
}

// SetupConfig declares provisioning steps run once when a worktree is
// first created.
type SetupConfig struct {
	// Copy lists paths relative to the repo root copied into the worktree.
	Copy []string `yaml:"copy"`
	// Run lists commands executed inside the new worktree, in order.
	Run []string `yaml:"run"`
}

// DefaultConfig returns the configuration used when grove.yaml is absent.
func DefaultConfig() *Config {
	return &Config{
		Layout:        DefaultLayoutFile,
		SessionPrefix: DefaultSessionPrefix,
		Ports: PortsConfig{
			Mode: PortModeSingle,
			From: 3000,
			To:   4000,
		},
	}
}

// Load reads and validates the configuration at path. A missing file loads
// defaults. Values present in the file override defaults field by field, so
// a partial file is fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("Config: %s not found, using defaults", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if errs := Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.ConfigInvalid("invalid " + path + ": " + strings.Join(msgs, "; "))
	}

	logger.Debug("Config: loaded %s", path)
	return cfg, nil
}
