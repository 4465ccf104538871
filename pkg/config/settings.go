package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into settings.
const EnvPrefix = "DOTFILES_"

// Settings tune one invocation.
type Settings struct {
	// Root is the dotfiles repository
	Root string `koanf:"root"`

	// Home overrides the home directory links are created in
	Home string `koanf:"home"`

	Output Output `koanf:"output"`
	Walk   Walk   `koanf:"walk"`
}

// Output holds rendering settings.
type Output struct {
	// Format is one of auto, term, text or json
	Format string `koanf:"format"`
}

// Walk holds repository traversal settings.
type Walk struct {
	// Ignore lists names never reported as unmapped
	Ignore []string `koanf:"ignore"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"root":          "",
		"home":          "",
		"output.format": "auto",
		"walk.ignore":   []string{},
	}
}

// LoadSettings layers, lowest priority first: defaults, the settings file
// (when present), DOTFILES_* environment variables and overrides. Override
// keys use dotted paths such as "output.format"; empty string values are
// ignored so unset flags do not mask lower layers.
func LoadSettings(settingsFile string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsFile).
					WithDetail("path", settingsFile)
			}
			logger.Debug().Str("path", settingsFile).Msg("Loaded settings file")
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	flags := make(map[string]interface{}, len(overrides))
	for key, val := range overrides {
		if s, ok := val.(string); ok && s == "" {
			continue
		}
		flags[key] = val
	}
	if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag settings")
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	logger.Trace().
		Str("root", s.Root).
		Str("home", s.Home).
		Str("format", s.Output.Format).
		Strs("ignore", s.Walk.Ignore).
		Msg("Settings loaded")
	return &s, nil
}

// Locations resolves the repository, home and mappings file for s.
func (s *Settings) Locations() (*paths.Locations, error) {
	return paths.ResolveLocations(s.Root, s.Home)
}
