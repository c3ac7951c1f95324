package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vidgrab/internal/dirs"
	"vidgrab/internal/model"
	"vidgrab/internal/resolver"
	"vidgrab/internal/translate"
)

// Keys maps viper keys to the persistent flag names bound to them.
var Keys = map[string]string{
	"out_dir":       "out-dir",
	"lang":          "lang",
	"verbose":       "verbose",
	"dl_binary":     "dl-binary",
	"no_ui":         "no-ui",
	"search_prefix": "search-prefix",
	"timeout":       "timeout",
	"overwrite":     "overwrite",
}

// Init wires v with config paths, env, defaults, and flag bindings.
// A missing config file is not an error.
func Init(v *viper.Viper, flags *pflag.FlagSet) error {
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		v.AddConfigPath(cfgDir)
	}
	v.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VIDGRAB_*
	v.SetEnvPrefix("VIDGRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out_dir", ".")
	v.SetDefault("search_prefix", resolver.DefaultSearchPrefix)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("translate_endpoint", translate.DefaultEndpoint)
	v.SetDefault("translate_rps", 2.0)

	if flags != nil {
		for key, name := range Keys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Load assembles run options with precedence flag > env > file > default.
func Load(v *viper.Viper) model.Options {
	out := strings.TrimSpace(v.GetString("out_dir"))
	if out == "" {
		out = "."
	}
	return model.Options{
		OutDir:            out,
		Lang:              strings.TrimSpace(v.GetString("lang")),
		Verbose:           v.GetBool("verbose"),
		NoUI:              v.GetBool("no_ui"),
		DLBinary:          v.GetString("dl_binary"),
		SearchPrefix:      v.GetString("search_prefix"),
		HTTPTimeout:       v.GetDuration("timeout"),
		TranslateEndpoint: v.GetString("translate_endpoint"),
		TranslateRPS:      v.GetFloat64("translate_rps"),
		Overwrite:         v.GetBool("overwrite"),
	}
}
