package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const templateHeader = `# umpconv configuration
# input: ump | bytes
# output: text | json | msgpack
# group: 0-15, used when converting byte-stream input to UMP
`

// Template renders the default configuration as TOML.
func Template() (string, error) {
	body, err := toml.Marshal(Default())
	if err != nil {
		return "", errors.Wrap(err, "render config template")
	}
	return templateHeader + string(body), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("config already exists: %s", path)
		}
	}
	return errors.Wrapf(os.WriteFile(path, []byte(template), 0o600), "write config %s", path)
}
