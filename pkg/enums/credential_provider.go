package enums

import "fmt"

// CredentialProvider identifies how a user proves their identity.
type CredentialProvider string

const (
	CredentialProviderPassword CredentialProvider = "password"
	CredentialProviderGoogle   CredentialProvider = "google"
	CredentialProviderApple    CredentialProvider = "apple"
)

var validCredentialProviders = []CredentialProvider{
	CredentialProviderPassword,
	CredentialProviderGoogle,
	CredentialProviderApple,
}

func (p CredentialProvider) String() string {
	return string(p)
}

func (p CredentialProvider) IsValid() bool {
	for _, candidate := range validCredentialProviders {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParseCredentialProvider(value string) (CredentialProvider, error) {
	for _, candidate := range validCredentialProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid credential provider %q", value)
}
