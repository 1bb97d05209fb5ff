package events

import (
	"encoding/json"
	"time"
)

// TriggerAlert opens a new alert, or adds a trigger log entry to an existing
// alert with the same DedupKey.
type TriggerAlert struct {
	routingKey string

	// Summary is a brief description of the event, used to generate the
	// titles of any associated alerts. The API permits at most 1024
	// characters.
	Summary string

	// Severity is the perceived severity of the event.
	Severity Severity

	// Source is the unique name of the location where the event occurred.
	// Defaults to the local host name.
	Source string

	// DedupKey correlates triggers, acknowledges, and resolves for the same
	// alert. Optional; when omitted, PagerDuty generates one and returns it
	// in the AlertResponse.
	DedupKey string

	// Timestamp is when the emitting tool detected the event. Optional; when
	// omitted, PagerDuty uses the time it receives the event.
	Timestamp *time.Time

	// Component of the source machine responsible for the event, e.g. "mysql"
	// or "eth0". Optional.
	Component string

	// Group is a logical grouping of components, e.g. "app-stack". Optional.
	Group string

	// Class of the event, e.g. "ping failure" or "cpu load". Optional.
	Class string

	// CustomDetails holds arbitrary additional details about the event. Any
	// JSON-serializable value. Optional.
	CustomDetails any

	Links  []Link
	Images []Image

	// Client and ClientURL name the monitoring tool that triggered this event
	// and link back to it from the PagerDuty UI. Set both or neither.
	Client    string
	ClientURL string
}

// NewTriggerAlert creates a trigger event with the two required fields.
// Source defaults to the local host name.
func NewTriggerAlert(severity Severity, summary string) *TriggerAlert {
	return &TriggerAlert{
		Summary:  summary,
		Severity: severity,
		Source:   localSource(),
	}
}

func (t *TriggerAlert) apiPath() string          { return alertPath }
func (t *TriggerAlert) setRoutingKey(key string) { t.routingKey = key }
func (t *TriggerAlert) isAlert()                 {}

// alertPayload is the nested "payload" object shared by trigger alerts.
type alertPayload struct {
	Summary       string     `json:"summary"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	Source        string     `json:"source,omitempty"`
	Severity      Severity   `json:"severity"`
	Component     string     `json:"component,omitempty"`
	Group         string     `json:"group,omitempty"`
	Class         string     `json:"class,omitempty"`
	CustomDetails any        `json:"custom_details,omitempty"`
}

func (t *TriggerAlert) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RoutingKey  string       `json:"routing_key"`
		EventAction eventAction  `json:"event_action"`
		DedupKey    string       `json:"dedup_key,omitempty"`
		Payload     alertPayload `json:"payload"`
		Links       []Link       `json:"links"`
		Images      []Image      `json:"images"`
		Client      string       `json:"client,omitempty"`
		ClientURL   string       `json:"client_url,omitempty"`
	}{
		RoutingKey:  t.routingKey,
		EventAction: actionTrigger,
		DedupKey:    t.DedupKey,
		Payload: alertPayload{
			Summary:       t.Summary,
			Timestamp:     t.Timestamp,
			Source:        t.Source,
			Severity:      t.Severity,
			Component:     t.Component,
			Group:         t.Group,
			Class:         t.Class,
			CustomDetails: t.CustomDetails,
		},
		Links:     emptyIfNil(t.Links),
		Images:    emptyIfNil(t.Images),
		Client:    t.Client,
		ClientURL: t.ClientURL,
	})
}

// AcknowledgeAlert moves the incident correlated by DedupKey into the
// acknowledged state, indicating that someone is working on the problem.
type AcknowledgeAlert struct {
	routingKey string

	// DedupKey must come from the AlertResponse returned after sending the
	// TriggerAlert, or the dedup key set on that trigger.
	DedupKey string
}

// NewAcknowledgeAlert creates an acknowledge event for a previously
// triggered alert.
func NewAcknowledgeAlert(dedupKey string) *AcknowledgeAlert {
	return &AcknowledgeAlert{DedupKey: dedupKey}
}

// NewAcknowledgeAlertFromResponse is a convenience constructor that pulls the
// dedup key out of the response to an earlier trigger.
func NewAcknowledgeAlertFromResponse(resp *AlertResponse) *AcknowledgeAlert {
	return NewAcknowledgeAlert(resp.DedupKey)
}

func (a *AcknowledgeAlert) apiPath() string          { return alertPath }
func (a *AcknowledgeAlert) setRoutingKey(key string) { a.routingKey = key }
func (a *AcknowledgeAlert) isAlert()                 {}

func (a *AcknowledgeAlert) MarshalJSON() ([]byte, error) {
	return json.Marshal(followUpWire{
		RoutingKey:  a.routingKey,
		EventAction: actionAcknowledge,
		DedupKey:    a.DedupKey,
	})
}

// ResolveAlert moves the incident correlated by DedupKey into the resolved
// state, after which further events with the same dedup key open a new
// incident instead of reopening this one.
type ResolveAlert struct {
	routingKey string

	// DedupKey must come from the AlertResponse returned after sending the
	// TriggerAlert, or the dedup key set on that trigger.
	DedupKey string
}

// NewResolveAlert creates a resolve event for a previously triggered alert.
func NewResolveAlert(dedupKey string) *ResolveAlert {
	return &ResolveAlert{DedupKey: dedupKey}
}

// NewResolveAlertFromResponse is a convenience constructor that pulls the
// dedup key out of the response to an earlier trigger.
func NewResolveAlertFromResponse(resp *AlertResponse) *ResolveAlert {
	return NewResolveAlert(resp.DedupKey)
}

func (r *ResolveAlert) apiPath() string          { return alertPath }
func (r *ResolveAlert) setRoutingKey(key string) { r.routingKey = key }
func (r *ResolveAlert) isAlert()                 {}

func (r *ResolveAlert) MarshalJSON() ([]byte, error) {
	return json.Marshal(followUpWire{
		RoutingKey:  r.routingKey,
		EventAction: actionResolve,
		DedupKey:    r.DedupKey,
	})
}

type followUpWire struct {
	RoutingKey  string      `json:"routing_key"`
	EventAction eventAction `json:"event_action"`
	DedupKey    string      `json:"dedup_key"`
}

// emptyIfNil keeps nil slices serializing as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
