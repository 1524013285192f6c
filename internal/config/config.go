package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CognitoConfig
	FirebaseConfig
	OIDCConfig
	LDAPConfig
	LocalConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetProvider() string
}

type mainConfig struct {
	EnvVars
	Cognito
	Firebase
	OIDC
	LDAP
	Local
}

func New() Config {
	return mainConfig{}
}

// Load reads a .env file from the working directory, if there is one, and
// returns the environment backed configuration. Variables already present in
// the environment take precedence over the file.
func Load(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}
	return New(), nil
}
