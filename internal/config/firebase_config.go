package config

type FirebaseConfig interface {
	GetFirebaseAPIKey() string
	GetFirebaseEndpoint() string
}

type Firebase struct{}

var _ FirebaseConfig = Firebase{}

func (Firebase) GetFirebaseAPIKey() string {
	return GetEnv("FIREBASE_API_KEY", "")
}

// GetFirebaseEndpoint overrides the Identity Toolkit base URL, e.g. to point at
// the Firebase auth emulator. Empty means the production endpoint.
func (Firebase) GetFirebaseEndpoint() string {
	return GetEnv("FIREBASE_ENDPOINT", "")
}
