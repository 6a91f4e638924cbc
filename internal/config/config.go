// Package config loads the one piece of genuine pipeline configuration
// spec.md §6 names: the quote-escape delimiter for terminals containing
// whitespace or angle brackets in a grammar file, and the default token
// output sink path. Grounded on dekarrin-tunaq's BurntSushi/toml-based
// config loading, adapted to this pipeline's much smaller surface; CLI
// flags (parsed by cobra/pflag in cmd/vartanlite, as in the teacher) take
// precedence over values loaded here, matching tunaq's "flags win" idiom.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional vartanlite.toml document.
type Config struct {
	// QuoteDelimiter quotes a terminal atom in a grammar file that
	// contains whitespace or angle brackets, e.g. `"+="`. Defaults to `"`.
	QuoteDelimiter string `toml:"quote_delimiter"`

	// TokensOut is the default path tokens are written to when the
	// `lexical` command's --output flag is omitted.
	TokensOut string `toml:"tokens_out"`
}

// Default returns the configuration used when no vartanlite.toml is
// present.
func Default() Config {
	return Config{QuoteDelimiter: `"`, TokensOut: ""}
}

// Load reads a TOML config file at path, falling back to Default() for any
// field left unset. A missing file is not an error: Default() is returned
// unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	var onDisk Config
	if _, err := toml.DecodeFile(path, &onDisk); err != nil {
		return Config{}, err
	}
	if onDisk.QuoteDelimiter != "" {
		cfg.QuoteDelimiter = onDisk.QuoteDelimiter
	}
	if onDisk.TokensOut != "" {
		cfg.TokensOut = onDisk.TokensOut
	}
	return cfg, nil
}
