package config

import "time"

type LocalConfig interface {
	GetLocalUsersFile() string
	GetTokenSecret() string
	GetTokenPrivateKeyFile() string
	GetTokenIssuer() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Local struct{}

var _ LocalConfig = Local{}

func (Local) GetLocalUsersFile() string {
	return GetEnv("LOCAL_USERS_FILE", "./data/users.json")
}

func (Local) GetTokenSecret() string {
	return GetEnv("TOKEN_SECRET", "")
}

// GetTokenPrivateKeyFile points at a PEM RSA key. When set, tokens are signed
// with RS256 instead of the HMAC secret.
func (Local) GetTokenPrivateKeyFile() string {
	return GetEnv("TOKEN_PRIVATE_KEY_FILE", "")
}

func (Local) GetTokenIssuer() string {
	return GetEnv("TOKEN_ISSUER", "go-signin")
}

func (Local) GetAccessTokenExpiry() time.Duration {
	return GetEnvDuration("ACCESS_TOKEN_EXPIRY", 1*time.Hour)
}

func (Local) GetRefreshTokenExpiry() time.Duration {
	return GetEnvDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour) // 7 days
}
