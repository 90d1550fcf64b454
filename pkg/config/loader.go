package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix for configuration environment variables
const EnvPrefix = "ARCHUP_"

// LoadOptions selects the user configuration file.
type LoadOptions struct {
	// Path is the user config file. A missing file is ignored unless
	// Explicit is set, i.e. the user asked for it with --config.
	Path     string
	Explicit bool

	// Flags, when set, is the command line's flag set. Flags named in
	// flagKeys override every other layer once the user sets them.
	Flags *pflag.FlagSet
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"workdir": "workdir",
}

// Load builds the configuration from defaults, the user file, the
// environment and finally the command line flags.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err == nil {
			if err := k.Load(file.Provider(opts.Path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.Path)
			}
		} else if opts.Explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.Path)
		}
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line flags
	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a step.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverCLI, DriverSocket:
	default:
		return errors.Newf(errors.ErrConfigValid, "database.driver must be %q or %q, got %q",
			DriverCLI, DriverSocket, c.Database.Driver)
	}
	if c.Database.ReadyTimeout <= 0 {
		return errors.Newf(errors.ErrConfigValid, "database.ready_timeout must be positive, got %s",
			c.Database.ReadyTimeout)
	}
	if c.Packages.Manager == "" {
		return errors.New(errors.ErrConfigValid, "packages.manager must not be empty")
	}
	if c.GitHub.MaxLoginAttempts < 1 {
		return errors.Newf(errors.ErrConfigValid, "github.max_login_attempts must be at least 1, got %d",
			c.GitHub.MaxLoginAttempts)
	}
	if c.Python.VenvDir == "" {
		return errors.New(errors.ErrConfigValid, "python.venv_dir must not be empty")
	}
	return nil
}

// ProjectURL renders the clone URL for a project name.
func (c *Config) ProjectURL(owner, name string) string {
	if owner == "" {
		owner = c.Project.Owner
	}
	r := strings.NewReplacer("{owner}", owner, "{name}", name)
	return r.Replace(c.Project.URLTemplate)
}
