package webhooks

import (
	"encoding/json"
	"strings"
	"time"
)

// envelope is the outer wrapper around every webhook delivery.
type envelope struct {
	Event *Metadata `json:"event"`
}

// Metadata is the shared information carried by every webhook delivery,
// attached to the typed payload during dispatch. One instance per inbound
// call, owned exclusively by the payload it is attached to.
type Metadata struct {
	// ID uniquely identifies this delivery.
	ID string `json:"id"`

	// EventType is the raw dotted event type string, e.g.
	// "incident.triggered". The typed payloads derive their EventType from
	// the portion after the first dot.
	EventType string `json:"event_type"`

	// ResourceType discriminates which concrete payload shape Data holds.
	ResourceType string `json:"resource_type"`

	// OccurredAt is when the event happened.
	OccurredAt time.Time `json:"occurred_at"`

	// Agent is the user or integration responsible for the event, if any.
	Agent *Reference `json:"agent"`

	// Client is optional information about the client that created the
	// event.
	Client map[string]string `json:"client"`

	// Data is the opaque resource-specific block. The dispatcher consumes it
	// into the typed payload and then clears it so it is not retained twice.
	Data json.RawMessage `json:"data"`
}

// eventTypeSuffix is the portion of the dotted event type after the first
// dot, or the whole string if there is no dot.
func (m *Metadata) eventTypeSuffix() string {
	return m.EventType[strings.Index(m.EventType, ".")+1:]
}

// Reference points at a related PagerDuty resource without embedding its full
// representation. Immutable value type.
type Reference struct {
	ID      string        `json:"id"`
	Type    ReferenceType `json:"type"`
	HTMLURL string        `json:"html_url,omitempty"`
	Self    string        `json:"self,omitempty"`
	Summary string        `json:"summary,omitempty"`
}

// ReferenceType identifies the kind of resource a Reference points at.
type ReferenceType int

const (
	// ReferenceTypeUnknown is the fallback for reference type strings this
	// library does not recognize, so new vendor types do not break inbound
	// parsing.
	ReferenceTypeUnknown ReferenceType = iota
	UserReference
	ServiceReference
	EscalationPolicyReference
	TeamReference
	PriorityReference
	IncidentWorkflowReference
	WorkflowTriggerReference
	InboundIntegrationReference
	IncidentReference
)

var referenceTypeNames = map[ReferenceType]string{
	UserReference:               "user_reference",
	ServiceReference:            "service_reference",
	EscalationPolicyReference:   "escalation_policy_reference",
	TeamReference:               "team_reference",
	PriorityReference:           "priority_reference",
	IncidentWorkflowReference:   "incident_workflow_reference",
	WorkflowTriggerReference:    "workflow_trigger_reference",
	InboundIntegrationReference: "inbound_integration_reference",
	IncidentReference:           "incident_reference",
}

var referenceTypesByName = func() map[string]ReferenceType {
	byName := make(map[string]ReferenceType, len(referenceTypeNames))
	for t, name := range referenceTypeNames {
		byName[name] = t
	}
	return byName
}()

func (t ReferenceType) String() string {
	if name, ok := referenceTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t ReferenceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ReferenceType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t = referenceTypesByName[name]
	return nil
}
