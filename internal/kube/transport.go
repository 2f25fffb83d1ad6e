package kube

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

const (
	// pemTypeCertificate is the PEM block type holding an X.509 certificate
	pemTypeCertificate = "CERTIFICATE"

	defaultDialTimeout = 30 * time.Second
	defaultKeepAlive   = 30 * time.Second
)

// Logger receives the non-fatal observations made while talking to a cluster
type Logger interface {
	Warningf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{})   {}

// TransportBuilder produces TLS configurations and HTTP transports that trust
// a cluster CA and, for certificate credentials, present the client identity.
// Every call builds from scratch; nothing is shared between the results.
type TransportBuilder struct {
	caCertPath string
	credential Credential
	log        Logger
}

// NewTransportBuilder creates a builder for the given CA file and credential
func NewTransportBuilder(caCertPath string, credential Credential, log Logger) *TransportBuilder {
	if log == nil {
		log = nopLogger{}
	}
	return &TransportBuilder{
		caCertPath: caCertPath,
		credential: credential,
		log:        log,
	}
}

// TLSConfig loads the CA file into a fresh root store and attaches the client
// certificate when the credential is certificate based. It fails with ErrConfig
// when the file cannot be read or holds no usable certificate. Certificates
// that fail to parse are skipped with a warning as long as one was loaded.
func (b *TransportBuilder) TLSConfig() (*tls.Config, error) {
	// #nosec G304
	data, err := os.ReadFile(b.caCertPath)
	if err != nil {
		return nil, newError(KindConfig, fmt.Errorf("failed to read CA certificate '%s': %w", b.caCertPath, err))
	}

	pool, added, skipped := parseCertPool(data)
	if added == 0 {
		return nil, newError(KindConfig, fmt.Errorf("no usable CA certificate in '%s'", b.caCertPath))
	}
	if skipped > 0 {
		b.log.Warningf("Couldn't add %d certificate(s) from %s", skipped, b.caCertPath)
	}
	b.log.Debugf("Loaded %d CA certificate(s) from %s", added, b.caCertPath)

	cfg := &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	switch c := b.credential.(type) {
	case *CertKeyCredential:
		pair, err := clientKeyPair(c)
		if err != nil {
			return nil, newError(KindConfig, err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	case *TokenCredential:
	default:
		return nil, newError(KindConfig, fmt.Errorf("unsupported credential type %T", b.credential))
	}

	return cfg, nil
}

// Transport returns an HTTP transport using a newly built TLS configuration.
// A positive readTimeout bounds every read on the underlying connection,
// including the wait for the first response byte.
func (b *TransportBuilder) Transport(readTimeout time.Duration) (*http.Transport, error) {
	cfg, err := b.TLSConfig()
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{
		Timeout:   defaultDialTimeout,
		KeepAlive: defaultKeepAlive,
	}
	dial := dialer.DialContext
	if readTimeout > 0 {
		dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &timeoutConn{Conn: conn, timeout: readTimeout}, nil
		}
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dial,
		TLSClientConfig:     cfg,
		TLSHandshakeTimeout: 10 * time.Second,
	}, nil
}

// parseCertPool adds every certificate block in data to a new pool and
// reports how many were added and how many failed to parse.
func parseCertPool(data []byte) (*x509.CertPool, int, int) {
	pool := x509.NewCertPool()
	added, skipped := 0, 0
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != pemTypeCertificate {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			skipped++
			continue
		}
		pool.AddCert(cert)
		added++
	}
	return pool, added, skipped
}

func clientKeyPair(c *CertKeyCredential) (tls.Certificate, error) {
	if len(c.Chain) == 0 {
		return tls.Certificate{}, fmt.Errorf("client certificate chain is empty")
	}
	var chain bytes.Buffer
	for _, cert := range c.Chain {
		chain.Write(cert)
		if len(cert) > 0 && cert[len(cert)-1] != '\n' {
			chain.WriteByte('\n')
		}
	}
	pair, err := tls.X509KeyPair(chain.Bytes(), c.Key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load client certificate and key: %w", err)
	}
	return pair, nil
}

// timeoutConn refreshes the read deadline before every read
type timeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *timeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}
