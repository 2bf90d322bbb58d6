package utils

//go:generate $MOCKGEN -source=credential_provider.go -destination=mocks/credential_provider_mock.go

// CredentialProvider is an interface that defines a method for retrieving an API key.
type CredentialProvider interface {
	// GetAPIKey returns the API key used to authenticate requests.
	GetAPIKey() string
}

// StaticCredentialProvider is a basic implementation of the CredentialProvider interface.
// It provides a static API key that is set during initialization.
type StaticCredentialProvider struct {
	// apiKey is the API key to return.
	apiKey string
}

// NewStaticCredentialProvider creates and returns a new instance of StaticCredentialProvider.
func NewStaticCredentialProvider(apiKey string) CredentialProvider {
	return &StaticCredentialProvider{apiKey: apiKey}
}

// GetAPIKey returns the API key used to authenticate requests.
func (p *StaticCredentialProvider) GetAPIKey() string {
	return p.apiKey
}
