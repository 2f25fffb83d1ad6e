package kube

import "time"

// Interface defines the contract for cluster API operations
// This interface allows for easy mocking in tests
type Interface interface {
	// GetInto issues a classified GET and decodes the JSON body into v
	GetInto(path string, v interface{}) error
	// GetValue issues a classified GET and decodes the body without a schema
	GetValue(path string) (interface{}, error)
	// GetRead issues a classified GET and returns the unread body.
	// A positive timeout bounds every read of the response.
	GetRead(path string, timeout time.Duration) (*Stream, error)
	// Delete issues a DELETE; the status is left for the caller to inspect
	Delete(path string) (*Stream, error)
}

// Ensure *Client implements Interface
var _ Interface = (*Client)(nil)

// Get issues a classified GET and decodes the body as a T
func Get[T any](c Interface, path string) (*T, error) {
	var v T
	if err := c.GetInto(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
