package cluster

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stackvista/kluster-cli/internal/kube"
)

// mockKubeClient serves canned JSON bodies keyed by API path
type mockKubeClient struct {
	responses    map[string]string
	err          error
	streamBody   string
	deleteStatus int
	deleteBody   string

	requested   []string
	readTimeout time.Duration
	closed      bool
}

func (m *mockKubeClient) body(path string) (string, error) {
	m.requested = append(m.requested, path)
	if m.err != nil {
		return "", m.err
	}
	body, ok := m.responses[path]
	if !ok {
		return "", &kube.Error{Kind: kube.KindOtherFailure, StatusCode: http.StatusNotFound}
	}
	return body, nil
}

func (m *mockKubeClient) GetInto(path string, v interface{}) error {
	body, err := m.body(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return &kube.Error{Kind: kube.KindDeserialize, Err: err}
	}
	return nil
}

func (m *mockKubeClient) GetValue(path string) (interface{}, error) {
	var v interface{}
	if err := m.GetInto(path, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (m *mockKubeClient) GetRead(path string, timeout time.Duration) (*kube.Stream, error) {
	m.requested = append(m.requested, path)
	m.readTimeout = timeout
	if m.err != nil {
		return nil, m.err
	}
	return m.stream(http.StatusOK, m.streamBody), nil
}

func (m *mockKubeClient) Delete(path string) (*kube.Stream, error) {
	m.requested = append(m.requested, path)
	if m.err != nil {
		return nil, m.err
	}
	return m.stream(m.deleteStatus, m.deleteBody), nil
}

func (m *mockKubeClient) stream(status int, body string) *kube.Stream {
	return &kube.Stream{Response: &http.Response{
		StatusCode: status,
		Body:       &closeTracker{Reader: strings.NewReader(body), closed: &m.closed},
	}}
}

type closeTracker struct {
	io.Reader
	closed *bool
}

func (c *closeTracker) Close() error {
	*c.closed = true
	return nil
}

// failingReader returns data once and then a transport failure
type failingReader struct {
	data string
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, io.ErrUnexpectedEOF
	}
	f.done = true
	return copy(p, f.data), nil
}

func (f *failingReader) Close() error {
	return nil
}
