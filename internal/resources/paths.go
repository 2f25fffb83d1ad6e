package resources

import (
	"fmt"
	"net/url"
	"strconv"
)

const apiV1 = "/api/v1"

// PodsPath returns the pod collection path; an empty namespace lists all namespaces
func PodsPath(namespace string) string {
	if namespace == "" {
		return apiV1 + "/pods"
	}
	return fmt.Sprintf("%s/namespaces/%s/pods", apiV1, url.PathEscape(namespace))
}

// PodPath returns the path of a single pod
func PodPath(namespace, name string) string {
	return fmt.Sprintf("%s/namespaces/%s/pods/%s", apiV1, url.PathEscape(namespace), url.PathEscape(name))
}

func NodesPath() string {
	return apiV1 + "/nodes"
}

// EventsPath returns the event collection path, optionally restricted to
// events involving the named pod
func EventsPath(namespace, pod string) string {
	path := apiV1 + "/events"
	if namespace != "" {
		path = fmt.Sprintf("%s/namespaces/%s/events", apiV1, url.PathEscape(namespace))
	}
	if pod == "" {
		return path
	}
	q := url.Values{}
	q.Set("fieldSelector", "involvedObject.name="+pod)
	return path + "?" + q.Encode()
}

// LogOptions selects what a pod log request returns
type LogOptions struct {
	Container string
	Follow    bool
	TailLines int64
}

// PodLogPath returns the log path of a pod
func PodLogPath(namespace, pod string, opts LogOptions) string {
	path := PodPath(namespace, pod) + "/log"
	q := url.Values{}
	if opts.Container != "" {
		q.Set("container", opts.Container)
	}
	if opts.Follow {
		q.Set("follow", "true")
	}
	if opts.TailLines > 0 {
		q.Set("tailLines", strconv.FormatInt(opts.TailLines, 10))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
