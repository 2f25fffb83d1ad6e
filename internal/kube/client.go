// Package kube provides an HTTPS client for a single Kubernetes API server,
// authenticated either with a bearer token or a client certificate, and
// trusting only the CA certificates loaded from the cluster's CA file.
package kube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to one cluster. It is not mutated after construction and may
// be shared between goroutines.
type Client struct {
	Name string

	endpoint   *url.URL
	credential Credential
	caCertPath string
	transports *TransportBuilder
	httpClient *http.Client
	log        Logger
}

// NewClient creates a client for the API server at server, trusting the CA
// certificates in caCertPath and authenticating with credential
func NewClient(name, caCertPath, server string, credential Credential, log Logger) (*Client, error) {
	if log == nil {
		log = nopLogger{}
	}

	endpoint, err := parseEndpoint(server)
	if err != nil {
		return nil, err
	}

	transports := NewTransportBuilder(caCertPath, credential, log)
	transport, err := transports.Transport(0)
	if err != nil {
		return nil, err
	}

	return &Client{
		Name:       name,
		endpoint:   endpoint,
		credential: credential,
		caCertPath: caCertPath,
		transports: transports,
		httpClient: &http.Client{Transport: transport},
		log:        log,
	}, nil
}

// Endpoint returns the base URL requests are resolved against
func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}

// CACertPath returns the CA file the client trusts
func (c *Client) CACertPath() string {
	return c.caCertPath
}

// GetInto issues a GET for path, classifies the response and decodes the body into v
func (c *Client) GetInto(path string, v interface{}) error {
	res, err := c.send(c.httpClient, http.MethodGet, path)
	if err != nil {
		return err
	}
	body, err := Classify(res.StatusCode, res.Body)
	if err != nil {
		return err
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return newError(KindDeserialize, err)
	}
	// only whitespace may follow the value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return newError(KindDeserialize, fmt.Errorf("unexpected data after JSON value"))
	}
	return nil
}

// GetValue issues a GET for path and decodes the body into untyped JSON values
func (c *Client) GetValue(path string) (interface{}, error) {
	var v interface{}
	if err := c.GetInto(path, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetRead issues a GET for path and returns the classified response unread.
// Without a timeout the shared transport is used. With a positive timeout a
// new TLS transport is built for this request alone, so the read timeout
// never applies to other requests; it is released when the stream is closed.
func (c *Client) GetRead(path string, timeout time.Duration) (*Stream, error) {
	if timeout <= 0 {
		res, err := c.send(c.httpClient, http.MethodGet, path)
		if err != nil {
			return nil, err
		}
		if _, err := Classify(res.StatusCode, res.Body); err != nil {
			return nil, err
		}
		return &Stream{Response: res}, nil
	}

	transport, err := c.transports.Transport(timeout)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("Built dedicated transport with %s read timeout for %s", timeout, path)

	res, err := c.send(&http.Client{Transport: transport}, http.MethodGet, path)
	if err != nil {
		transport.CloseIdleConnections()
		return nil, err
	}
	if _, err := Classify(res.StatusCode, res.Body); err != nil {
		transport.CloseIdleConnections()
		return nil, err
	}
	return &Stream{Response: res, release: transport.CloseIdleConnections}, nil
}

// Delete issues a DELETE for path. The response is returned whatever its
// status; the caller decides what a non-200 means.
func (c *Client) Delete(path string) (*Stream, error) {
	res, err := c.send(c.httpClient, http.MethodDelete, path)
	if err != nil {
		return nil, err
	}
	return &Stream{Response: res}, nil
}

// send resolves path against the endpoint, applies the credential and performs the request
func (c *Client) send(hc *http.Client, method, path string) (*http.Response, error) {
	u, err := c.endpoint.Parse(path)
	if err != nil {
		return nil, newError(KindURL, fmt.Errorf("failed to join '%s': %w", path, err))
	}

	req, err := http.NewRequestWithContext(context.Background(), method, u.String(), nil)
	if err != nil {
		return nil, newError(KindURL, err)
	}
	applyCredential(req, c.credential)

	c.log.Debugf("%s %s", method, u.Redacted())
	res, err := hc.Do(req)
	if err != nil {
		return nil, newError(KindTransport, err)
	}
	return res, nil
}

func parseEndpoint(server string) (*url.URL, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, newError(KindURL, fmt.Errorf("failed to parse server '%s': %w", server, err))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, newError(KindURL, fmt.Errorf("server '%s' is not an absolute URL", server))
	}
	return u, nil
}

// Stream is a live response whose body has not been read yet.
// Read failures are reported as ErrTransport.
type Stream struct {
	Response *http.Response
	release  func()
}

// StatusCode returns the HTTP status of the response
func (s *Stream) StatusCode() int {
	return s.Response.StatusCode
}

func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.Response.Body.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, newError(KindTransport, err)
	}
	return n, err
}

// Close closes the body and releases a dedicated transport, if any
func (s *Stream) Close() error {
	err := s.Response.Body.Close()
	if s.release != nil {
		s.release()
	}
	return err
}
