package config

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"text/template"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/ports"
)

// EnvContext is the data handed to env value templates. Plain fields render
// directly; Port and SecondPort are lazy capabilities that run the port scan
// on first reference and share the result across every entry of the same
// render, so an unreferenced port is never allocated.
type EnvContext struct {
	Label    string
	Branch   string
	Worktree string

	ctx       context.Context
	portsCfg  PortsConfig
	allocator *ports.Allocator

	scanned  bool
	first    int
	second   int
	scanErr  error
	firstErr error
}

// NewEnvContext builds the template context for one create invocation.
func NewEnvContext(ctx context.Context, cfg *Config, allocator *ports.Allocator, label, worktree string) *EnvContext {
	return &EnvContext{
		Label:     label,
		Branch:    label,
		Worktree:  worktree,
		ctx:       ctx,
		portsCfg:  cfg.Ports,
		allocator: allocator,
	}
}

// Port returns the allocated port. In pair mode this is the higher port of
// the adjacent pair.
func (e *EnvContext) Port() (string, error) {
	if err := e.scan(); err != nil {
		return e.fail(err)
	}
	return strconv.Itoa(e.first), nil
}

// SecondPort returns the lower port of the adjacent pair. Referencing it
// with ports.mode single is an error.
func (e *EnvContext) SecondPort() (string, error) {
	if e.portsCfg.Mode != PortModePair {
		return e.fail(errors.E(errors.Op("config.RenderEnv"), errors.KindValidation,
			fmt.Sprintf("SecondPort requires ports.mode %q, have %q", PortModePair, e.portsCfg.Mode)))
	}
	if err := e.scan(); err != nil {
		return e.fail(err)
	}
	return strconv.Itoa(e.second), nil
}

func (e *EnvContext) scan() error {
	if e.scanned {
		return e.scanErr
	}
	e.scanned = true

	if e.portsCfg.Mode == PortModePair {
		pair, err := e.allocator.FindPair(e.ctx, e.portsCfg.From, e.portsCfg.To)
		if err != nil {
			e.scanErr = err
			return err
		}
		e.first, e.second = pair.First, pair.Second
		return nil
	}

	port, err := e.allocator.Find(e.ctx, e.portsCfg.From, e.portsCfg.To)
	if err != nil {
		e.scanErr = err
		return err
	}
	e.first = port
	return nil
}

// fail records the first capability error so RenderEnv can surface it
// instead of the template-wrapped version.
func (e *EnvContext) fail(err error) (string, error) {
	if e.firstErr == nil {
		e.firstErr = err
	}
	return "", err
}

// RenderEnv renders the configured env templates against envCtx. Keys render
// in sorted order so failures are reported deterministically. A config with
// no env entries renders to nil.
func (c *Config) RenderEnv(envCtx *EnvContext) (map[string]string, error) {
	if len(c.Env) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(c.Env))
	for _, key := range keys {
		tmpl, err := template.New(key).Parse(c.Env[key])
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("env.%s: invalid template: %v", key, err))
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, envCtx); err != nil {
			if envCtx.firstErr != nil {
				return nil, envCtx.firstErr
			}
			return nil, errors.ConfigInvalid(fmt.Sprintf("env.%s: %v", key, err))
		}
		out[key] = buf.String()
	}
	return out, nil
}
