// Package config binds the process-wide environment-variable overrides
// spec.md §6's CLI surface names alongside their flag equivalents
// (`-x/--max-call-depth` and `FEINT_MAX_CALL_DEPTH`, `-d/--debug` and
// `FEINT_DEBUG`), using github.com/caarlos0/env/v6 struct tags (the
// mna/mainer dependency on its own leaves environment binding switched off
// via `maincmd.Cmd`'s `EnvVars: false`, so this package binds it directly).
package config

import "github.com/caarlos0/env/v6"

// Config holds the environment-derived defaults a CLI flag may override.
// Zero values (MaxCallDepth 0, Debug false) match spec.md §4.4's "0 =
// unlimited" recursion-limit default and §9's "debug is a no-op unless set."
type Config struct {
	MaxCallDepth int  `env:"FEINT_MAX_CALL_DEPTH" envDefault:"0"`
	Debug        bool `env:"FEINT_DEBUG" envDefault:"false"`
}

// Load reads Config from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
