package dirbuild

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	EnvEnv = "RESPACK_ENV"
)

// LoadEnv reads a YAML or JSON object of strings from $RESPACK_ENV.
func LoadEnv() (map[string]string, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var res map[string]string
	if err := yaml.Unmarshal([]byte(envEnv), &res); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	slog.Debug("loaded env from env", "var", EnvEnv, "keys", len(res))
	return res, nil
}
