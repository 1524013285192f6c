package config

type CognitoConfig interface {
	GetCognitoRegion() string
	GetCognitoClientID() string
	GetCognitoClientSecret() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSSessionToken() string
}

type Cognito struct{}

var _ CognitoConfig = Cognito{}

func (Cognito) GetCognitoRegion() string {
	return GetEnv("COGNITO_REGION", GetEnv("AWS_REGION", ""))
}

func (Cognito) GetCognitoClientID() string {
	return GetEnv("COGNITO_CLIENT_ID", "")
}

// GetCognitoClientSecret is only set for app clients created with a secret.
func (Cognito) GetCognitoClientSecret() string {
	return GetEnv("COGNITO_CLIENT_SECRET", "")
}

// GetAWSAccessKeyID is optional; when empty the default AWS credential chain is used.
func (Cognito) GetAWSAccessKeyID() string {
	return GetEnv("COGNITO_ACCESS_KEY_ID", "")
}

func (Cognito) GetAWSSecretAccessKey() string {
	return GetEnv("COGNITO_SECRET_ACCESS_KEY", "")
}

func (Cognito) GetAWSSessionToken() string {
	return GetEnv("COGNITO_SESSION_TOKEN", "")
}
