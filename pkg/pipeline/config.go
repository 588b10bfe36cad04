package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// LoadOptions decodes a TOML file over DefaultOptions. Keys the file sets
// replace defaults; unknown keys are an error.
//
//	rows = 4
//	cols = 5
//	mode = "RGBA"
//	timestamp_anchor = "bottom-right"
//	shadow_offset = [-8, 6]
//
//	[colors]
//	background = "#101010"
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, errs.New(errs.ErrCodeFileNotFound, "config file %s does not exist", path)
	}
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}
