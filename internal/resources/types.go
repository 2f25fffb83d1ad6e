// Package resources holds the subset of Kubernetes API objects the CLI reads,
// and the API paths they are served from.
package resources

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Metadata is the object metadata common to every resource
type Metadata struct {
	Name              string       `json:"name"`
	Namespace         *string      `json:"namespace"`
	CreationTimestamp *metav1.Time `json:"creationTimestamp"`
}

// PodStatus holds the observed phase of a pod
type PodStatus struct {
	Phase corev1.PodPhase `json:"phase"`
}

type Pod struct {
	Metadata Metadata  `json:"metadata"`
	Status   PodStatus `json:"status"`
}

type PodList struct {
	Items []Pod `json:"items"`
}

// Event is a cluster event, usually attached to a pod
type Event struct {
	Count         uint32      `json:"count"`
	Message       string      `json:"message"`
	Reason        string      `json:"reason"`
	LastTimestamp metav1.Time `json:"lastTimestamp"`
}

type EventList struct {
	Items []Event `json:"items"`
}

type NodeCondition struct {
	Type   corev1.NodeConditionType `json:"type"`
	Status corev1.ConditionStatus   `json:"status"`
}

type NodeStatus struct {
	Conditions []NodeCondition `json:"conditions"`
}

type NodeSpec struct {
	Unschedulable *bool `json:"unschedulable"`
}

type Node struct {
	Metadata Metadata   `json:"metadata"`
	Spec     NodeSpec   `json:"spec"`
	Status   NodeStatus `json:"status"`
}

type NodeList struct {
	Items []Node `json:"items"`
}

// Ready reports whether the node's Ready condition is True
func (n Node) Ready() bool {
	for _, c := range n.Status.Conditions {
		if c.Type == corev1.NodeReady {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}

// Schedulable reports whether new pods may be placed on the node
func (n Node) Schedulable() bool {
	return n.Spec.Unschedulable == nil || !*n.Spec.Unschedulable
}
