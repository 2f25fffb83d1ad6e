package kube

import (
	"fmt"
	"net/http"
	"os"
)

// Certificate is a PEM-encoded X.509 certificate.
type Certificate []byte

// PrivateKey is a PEM-encoded private key matching the leaf of a certificate chain.
type PrivateKey []byte

// Credential is how a client authenticates against the API server. It is either
// a *TokenCredential or a *CertKeyCredential; the set is closed by the unexported
// method so every type switch over it only has to handle those two.
type Credential interface {
	isCredential()
}

// TokenCredential authenticates with an "Authorization: Bearer" header.
type TokenCredential struct {
	Token string
}

// CertKeyCredential authenticates with a client certificate during the TLS handshake.
type CertKeyCredential struct {
	Chain []Certificate
	Key   PrivateKey
}

func (*TokenCredential) isCredential()   {}
func (*CertKeyCredential) isCredential() {}

// WithToken returns a bearer token credential
func WithToken(token string) Credential {
	return &TokenCredential{Token: token}
}

// WithCertAndKey returns a client certificate credential with a single certificate.
// The material is not validated until a TLS configuration is built from it.
func WithCertAndKey(cert Certificate, key PrivateKey) Credential {
	return WithCertChainAndKey([]Certificate{cert}, key)
}

// WithCertChainAndKey returns a client certificate credential presenting the given chain, leaf first.
func WithCertChainAndKey(chain []Certificate, key PrivateKey) Credential {
	c := make([]Certificate, len(chain))
	copy(c, chain)
	return &CertKeyCredential{Chain: c, Key: key}
}

// LoadCertAndKey reads a PEM certificate (or chain) and its private key from disk
func LoadCertAndKey(certPath, keyPath string) (Credential, error) {
	// #nosec G304
	cert, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read client certificate '%s': %w", certPath, err)
	}
	// #nosec G304
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read client key '%s': %w", keyPath, err)
	}
	return WithCertAndKey(cert, key), nil
}

// applyCredential sets the request headers derived from cred. Certificate
// credentials add nothing here; they are presented during the handshake.
func applyCredential(req *http.Request, cred Credential) {
	switch c := cred.(type) {
	case *TokenCredential:
		req.Header.Set("Authorization", "Bearer "+c.Token)
	case *CertKeyCredential:
	}
}
