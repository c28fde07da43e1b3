package cli

import (
	stderrors "errors"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/birchtree/birch/pkg/errors"
	"github.com/birchtree/birch/pkg/pipeline"
	"github.com/birchtree/birch/pkg/render/text"
)

// configFileName is the file looked up in the config directory.
const configFileName = "config.toml"

// Config holds user defaults read from config.toml. Command-line flags
// override these values.
//
//	format = "svg"
//	enumerator = "rounded"
//	detailed = true
//	auto_id = false
type Config struct {
	Format     string `toml:"format"`     // default output format for render
	Enumerator string `toml:"enumerator"` // default or rounded
	Detailed   bool   `toml:"detailed"`   // nodelink labels show value and features
	AutoID     bool   `toml:"auto_id"`    // generate ids for nodes without one
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Format:     pipeline.DefaultFormat,
		Enumerator: string(text.EnumeratorDefault),
	}
}

// LoadConfig reads and validates a config file. Keys that are not part of
// Config are rejected. Unset keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormat(c.Format); err != nil {
		return err
	}
	if _, err := text.ParseEnumerator(c.Enumerator); err != nil {
		return err
	}
	return nil
}
