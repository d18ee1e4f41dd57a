package requests

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNilViper is returned by LoadConfig when it is given a nil Viper
// instance.
var ErrNilViper = errors.New("the viper instance cannot be nil")

// Config holds the settings used to build a Store for each request.
//
// A YAML configuration might look like this:
//
//     parse: true
//     multipartMemory: 1048576
//     envFiles:
//       - .env
//     overrides:
//       env:
//         app_mode: test
type Config struct {
	// Parse controls whether scopes are read from the request.  It
	// defaults to true.
	Parse bool `mapstructure:"parse"`

	// MultipartMemory is the memory limit for multipart bodies.
	MultipartMemory int64 `mapstructure:"multipartMemory"`

	// EnvFiles are dotenv files merged into the Env scope.  Unless the
	// Config has been through PreloadEnv, they are read again for each
	// Store, and a missing file empties Env for that Store.
	EnvFiles []string `mapstructure:"envFiles"`

	// Overrides pre-populates scopes, keyed by scope name.  Viper
	// lower-cases every key it loads, variable names included.
	Overrides map[string]map[string]interface{} `mapstructure:"overrides"`

	dotEnv *DotEnv
}

// DefaultConfig returns the Config used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Parse:           true,
		MultipartMemory: DefaultMultipartMemory,
	}
}

// LoadConfig reads a Config from v.  Keys v does not set keep the
// values of DefaultConfig.  Every problem found is returned, combined
// with go.uber.org/multierr.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, ErrNilViper
	}
	defaults := DefaultConfig()
	v.SetDefault("parse", defaults.Parse)
	v.SetDefault("multipartMemory", defaults.MultipartMemory)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg for values that cannot be used.
func (cfg Config) Validate() (err error) {
	if cfg.MultipartMemory < 0 {
		err = multierr.Append(err, fmt.Errorf("multipartMemory cannot be negative: %d", cfg.MultipartMemory))
	}
	_, scopeErr := cfg.ScopeOverrides()
	return multierr.Append(err, scopeErr)
}

// ScopeOverrides converts Overrides into the form NewStore accepts.
func (cfg Config) ScopeOverrides() (map[Scope]Vars, error) {
	if len(cfg.Overrides) == 0 {
		return nil, nil
	}
	var (
		overrides = make(map[Scope]Vars, len(cfg.Overrides))
		err       error
	)
	for name, vars := range cfg.Overrides {
		scope, parseErr := ParseScope(name)
		if parseErr != nil {
			err = multierr.Append(err, parseErr)
			continue
		}
		overrides[scope] = Vars(vars)
	}
	return overrides, err
}

// PreloadEnv returns a copy of cfg whose EnvFiles have been read once
// with ReadDotEnv.  Stores built from the copy share that snapshot
// instead of reading the files themselves.  A read failure is logged
// here and still leaves Env empty in every Store.
func (cfg Config) PreloadEnv() Config {
	if len(cfg.EnvFiles) == 0 {
		return cfg
	}
	cfg.dotEnv = ReadDotEnv(cfg.EnvFiles...)
	if cfg.dotEnv.Err != nil {
		Logger().Warn("could not read env files",
			zap.Strings("files", cfg.EnvFiles),
			zap.Error(cfg.dotEnv.Err),
		)
	}
	return cfg
}

// Source returns the HTTPSource cfg describes for request.
func (cfg Config) Source(request *http.Request) *HTTPSource {
	return &HTTPSource{
		Request:         request,
		MultipartMemory: cfg.MultipartMemory,
		EnvFiles:        cfg.EnvFiles,
		DotEnv:          cfg.dotEnv,
	}
}

// NewFromConfig creates a *Store for request using cfg.
func NewFromConfig(request *http.Request, cfg Config) (*Store, error) {
	overrides, err := cfg.ScopeOverrides()
	if err != nil {
		return nil, err
	}
	return NewStore(cfg.Source(request), overrides, cfg.Parse), nil
}
