// Package env reads the environment variables that tune ebuild.
package env

import (
	"os"
	"strconv"

	"github.com/goplus/ebuild/pkgs/logging"
)

const (
	ColorVar          = "EBUILD_COLOR"
	DebugVar          = "EBUILD_DEBUG"
	FollowSymlinksVar = "EBUILD_FOLLOW_SYMLINKS"
)

// Config is the environment-derived configuration.
type Config struct {
	Color          logging.ColorMode
	Debug          bool
	FollowSymlinks bool
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads Config through lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if v, ok := lookup(ColorVar); ok {
		mode, err := logging.ParseColorMode(v)
		if err != nil {
			return cfg, err
		}
		cfg.Color = mode
	}
	cfg.Debug = flag(lookup, DebugVar)
	cfg.FollowSymlinks = flag(lookup, FollowSymlinksVar)
	return cfg, nil
}

// Logger builds a Logger writing to the standard streams.
func (c Config) Logger() *logging.Logger {
	return logging.New(logging.Options{Color: c.Color, Debug: c.Debug})
}

// flag treats any non-empty value as set, except values strconv.ParseBool
// reads as false.
func flag(lookup func(string) (string, bool), key string) bool {
	v, ok := lookup(key)
	if !ok || v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}
