package cluster

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/output"
)

const podsFixture = `{
  "kind": "PodList",
  "items": [
    {"metadata": {"name": "web-0", "namespace": "web", "creationTimestamp": "2024-03-01T09:00:00Z"}, "status": {"phase": "Running"}},
    {"metadata": {"name": "web-1", "namespace": "web"}, "status": {"phase": "Pending"}}
  ]
}`

const nodesFixture = `{
  "items": [
    {"metadata": {"name": "node-a", "creationTimestamp": "2024-02-28T12:00:00Z"},
     "status": {"conditions": [{"type": "MemoryPressure", "status": "False"}, {"type": "Ready", "status": "True"}]}},
    {"metadata": {"name": "node-b", "creationTimestamp": "2024-03-01T11:00:00Z"},
     "spec": {"unschedulable": true},
     "status": {"conditions": [{"type": "Ready", "status": "Unknown"}]}}
  ]
}`

const eventsFixture = `{
  "items": [
    {"count": 3, "reason": "BackOff", "message": "Back-off restarting failed container", "lastTimestamp": "2024-03-01T11:59:00Z"},
    {"count": 1, "reason": "Scheduled", "message": "Successfully assigned web/web-0", "lastTimestamp": "2024-03-01T11:00:00Z"}
  ]
}`

func TestListPods(t *testing.T) {
	tests := []struct {
		name          string
		namespace     string
		format        string
		responses     map[string]string
		err           error
		expectPath    string
		expectOutput  []string
		expectErrorIs error
	}{
		{
			name:         "table",
			namespace:    "web",
			format:       "table",
			responses:    map[string]string{"/api/v1/namespaces/web/pods": podsFixture},
			expectPath:   "/api/v1/namespaces/web/pods",
			expectOutput: []string{"NAME", "PHASE", "web-0", "Running", "3h", "web-1", "Pending", "<unknown>"},
		},
		{
			name:         "all namespaces",
			namespace:    "",
			format:       "table",
			responses:    map[string]string{"/api/v1/pods": podsFixture},
			expectPath:   "/api/v1/pods",
			expectOutput: []string{"web-0"},
		},
		{
			name:         "empty list",
			namespace:    "web",
			format:       "table",
			responses:    map[string]string{"/api/v1/namespaces/web/pods": `{"items": []}`},
			expectPath:   "/api/v1/namespaces/web/pods",
			expectOutput: []string{"No resources found"},
		},
		{
			name:          "unauthorized",
			namespace:     "web",
			format:        "table",
			err:           &kube.Error{Kind: kube.KindUnauthorized, StatusCode: http.StatusUnauthorized},
			expectPath:    "/api/v1/namespaces/web/pods",
			expectErrorIs: kube.ErrUnauthorized,
		},
		{
			name:          "malformed body",
			namespace:     "web",
			format:        "table",
			responses:     map[string]string{"/api/v1/namespaces/web/pods": `{"items": [`},
			expectPath:    "/api/v1/namespaces/web/pods",
			expectErrorIs: kube.ErrDeserialize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockKubeClient{responses: tt.responses, err: tt.err}
			var buf bytes.Buffer

			err := listPods(client, tt.namespace, output.NewFormatterWithWriter(&buf, tt.format), testNow)

			assert.Equal(t, []string{tt.expectPath}, client.requested)
			if tt.expectErrorIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectErrorIs)
				assert.Contains(t, err.Error(), "failed to list pods")
				return
			}
			require.NoError(t, err)
			for _, s := range tt.expectOutput {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestListPods_JSON(t *testing.T) {
	client := &mockKubeClient{responses: map[string]string{"/api/v1/namespaces/web/pods": podsFixture}}
	var buf bytes.Buffer

	require.NoError(t, listPods(client, "web", output.NewFormatterWithWriter(&buf, "json"), testNow))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "web-0", rows[0]["name"])
	assert.Equal(t, "web", rows[0]["namespace"])
	assert.Equal(t, "Running", rows[0]["phase"])
	assert.Equal(t, "3h", rows[0]["age"])
}

func TestListNodes(t *testing.T) {
	client := &mockKubeClient{responses: map[string]string{"/api/v1/nodes": nodesFixture}}
	var buf bytes.Buffer

	require.NoError(t, listNodes(client, output.NewFormatterWithWriter(&buf, "json"), testNow))

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"name": "node-a", "status": "Ready", "age": "2d"}, rows[0])
	assert.Equal(t, map[string]string{"name": "node-b", "status": "NotReady,SchedulingDisabled", "age": "60m"}, rows[1])
}

func TestListNodes_Error(t *testing.T) {
	client := &mockKubeClient{err: &kube.Error{Kind: kube.KindOtherFailure, StatusCode: http.StatusForbidden}}

	err := listNodes(client, output.NewFormatterWithWriter(&bytes.Buffer{}, "table"), testNow)

	require.Error(t, err)
	assert.ErrorIs(t, err, kube.ErrOtherFailure)
	assert.Contains(t, err.Error(), "403")
}

func TestListEvents(t *testing.T) {
	t.Run("sorted oldest first", func(t *testing.T) {
		client := &mockKubeClient{responses: map[string]string{"/api/v1/namespaces/web/events": eventsFixture}}
		var buf bytes.Buffer

		require.NoError(t, listEvents(client, "web", "", output.NewFormatterWithWriter(&buf, "json"), testNow))

		var rows []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Scheduled", rows[0]["reason"])
		assert.Equal(t, "60m", rows[0]["last seen"])
		assert.Equal(t, "BackOff", rows[1]["reason"])
		assert.Equal(t, "3", rows[1]["count"])
		assert.Equal(t, "60s", rows[1]["last seen"])
	})

	t.Run("filtered by pod", func(t *testing.T) {
		path := "/api/v1/namespaces/web/events?fieldSelector=involvedObject.name%3Dweb-0"
		client := &mockKubeClient{responses: map[string]string{path: eventsFixture}}
		var buf bytes.Buffer

		require.NoError(t, listEvents(client, "web", "web-0", output.NewFormatterWithWriter(&buf, "table"), testNow))

		assert.Equal(t, []string{path}, client.requested)
		assert.Contains(t, buf.String(), "LAST SEEN")
		assert.Contains(t, buf.String(), "Back-off restarting failed container")
	})

	t.Run("no events in table mode", func(t *testing.T) {
		client := &mockKubeClient{responses: map[string]string{"/api/v1/namespaces/web/events": `{"items": []}`}}
		var buf bytes.Buffer

		require.NoError(t, listEvents(client, "web", "", output.NewFormatterWithWriter(&buf, "table"), testNow))
		assert.Equal(t, "No events found\n", buf.String())
	})

	t.Run("no events in json mode", func(t *testing.T) {
		client := &mockKubeClient{responses: map[string]string{"/api/v1/namespaces/web/events": `{"items": []}`}}
		var buf bytes.Buffer

		require.NoError(t, listEvents(client, "web", "", output.NewFormatterWithWriter(&buf, "json"), testNow))
		assert.JSONEq(t, "[]", buf.String())
	})
}

func TestPrintRaw(t *testing.T) {
	path := "/api/v1/namespaces/web/pods/web-0"
	client := &mockKubeClient{responses: map[string]string{path: `{"kind": "Pod", "metadata": {"name": "web-0"}}`}}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printRaw(client, path, output.NewFormatterWithWriter(&buf, "yaml")))
		assert.Equal(t, "kind: Pod\nmetadata:\n  name: web-0\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printRaw(client, path, output.NewFormatterWithWriter(&buf, "table")))
		assert.JSONEq(t, `{"kind": "Pod", "metadata": {"name": "web-0"}}`, buf.String())
	})

	t.Run("not found", func(t *testing.T) {
		err := printRaw(client, "/api/v1/nodes/missing", output.NewFormatterWithWriter(&bytes.Buffer{}, "json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, kube.ErrOtherFailure)
		assert.Contains(t, err.Error(), "failed to get '/api/v1/nodes/missing'")
	})
}
