package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a username/password pair. The engine only needs
// this narrow interface, so the demo account can be swapped for a real
// identity provider without touching anything else.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// demoVerifier validates against the single configured demo account. When a
// bcrypt hash is configured it takes precedence over the plaintext password.
type demoVerifier struct {
	username     string
	password     string
	passwordHash string
}

// NewDemoVerifier builds a verifier for the configured demo credential pair.
func NewDemoVerifier(username, password, passwordHash string) CredentialVerifier {
	return &demoVerifier{username: username, password: password, passwordHash: passwordHash}
}

func (v *demoVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	if v.passwordHash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password)) == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
	return userOK && passOK
}
