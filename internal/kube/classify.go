package kube

import (
	"io"
	"net/http"
)

// Classify maps a response status to an outcome. A 200 hands back body
// untouched; any other status closes body and returns an *Error with kind
// KindUnauthorized (401) or KindOtherFailure carrying the status.
func Classify(statusCode int, body io.ReadCloser) (io.ReadCloser, error) {
	switch statusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		closeQuietly(body)
		return nil, &Error{Kind: KindUnauthorized, StatusCode: statusCode}
	default:
		closeQuietly(body)
		return nil, &Error{Kind: KindOtherFailure, StatusCode: statusCode}
	}
}

func closeQuietly(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
