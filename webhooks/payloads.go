package webhooks

import (
	"encoding/json"
	"time"
)

// Resource-type discriminator strings, one per payload variant. This closed
// set is the polymorphism mechanism: the dispatcher maps the envelope's
// resource_type through it to pick the concrete payload shape.
const (
	ResourceTypePing                     = "pagey"
	ResourceTypeIncident                 = "incident"
	ResourceTypeIncidentNote             = "incident_note"
	ResourceTypeIncidentConferenceBridge = "incident_conference_bridge"
	ResourceTypeIncidentFieldValues      = "incident_field_values"
	ResourceTypeIncidentStatusUpdate     = "incident_status_update"
	ResourceTypeIncidentResponder        = "incident_responder"
	ResourceTypeIncidentWorkflowInstance = "incident_workflow_instance"
	ResourceTypeService                  = "service"
)

// Ping is the test payload PagerDuty sends when a webhook subscription is
// created or manually pinged.
type Ping struct {
	// Metadata is the shared delivery envelope information, attached by the
	// dispatcher.
	Metadata *Metadata `json:"-"`

	Message string `json:"message"`
}

// EventType derives the sub-event from the delivery's dotted event-type
// string. An unrecognized suffix returns PingEventUnknown and an error.
func (p *Ping) EventType() (PingEventType, error) {
	return ParsePingEventType(p.Metadata.eventTypeSuffix())
}


// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus int

const (
	IncidentStatusUnknown IncidentStatus = iota
	IncidentStatusTriggered
	IncidentStatusAcknowledged
	IncidentStatusResolved
)

var incidentStatusNames = map[string]IncidentStatus{
	"triggered":    IncidentStatusTriggered,
	"acknowledged": IncidentStatusAcknowledged,
	"resolved":     IncidentStatusResolved,
}

func (s IncidentStatus) String() string {
	for name, status := range incidentStatusNames {
		if status == s {
			return name
		}
	}
	return "unknown"
}

func (s *IncidentStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = incidentStatusNames[name]
	return nil
}

func (s IncidentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// IncidentType wraps the incident type's name, matching the nested
// {"name": ...} object on the wire.
type IncidentType struct {
	Name string `json:"name"`
}

// ConferenceBridge is an optional dial-in attached to an incident.
type ConferenceBridge struct {
	ConferenceNumber string `json:"conference_number,omitempty"`
	ConferenceURL    string `json:"conference_url,omitempty"`
}

// Incident describes an incident at the time the sub-event occurred.
type Incident struct {
	Metadata *Metadata `json:"-"`

	ID          string `json:"id"`
	Self        string `json:"self"`
	HTMLURL     string `json:"html_url"`
	Number      int64  `json:"number"`

	Status      IncidentStatus `json:"status"`
	IncidentKey string         `json:"incident_key"`
	CreatedAt   time.Time      `json:"created_at"`
	Title       string         `json:"title"`

	IncidentType IncidentType `json:"incident_type"`

	Service          Reference   `json:"service"`
	Assignees        []Reference `json:"assignees"`
	EscalationPolicy Reference   `json:"escalation_policy"`
	Teams            []Reference `json:"teams"`
	Priority         *Reference  `json:"priority"`

	// Urgency is "high" or "low"; see HighUrgency.
	Urgency string `json:"urgency"`

	ConferenceBridge *ConferenceBridge `json:"conference_bridge"`
	ResolveReason    string            `json:"resolve_reason"`
}

// HighUrgency reports whether the incident has high urgency.
func (i *Incident) HighUrgency() bool { return i.Urgency == "high" }

// EventType derives the sub-event from the delivery's dotted event-type
// string. An unrecognized suffix returns IncidentEventUnknown and an error.
func (i *Incident) EventType() (IncidentEventType, error) {
	return ParseIncidentEventType(i.Metadata.eventTypeSuffix())
}


// IncidentNote is a note added to an incident.
type IncidentNote struct {
	Metadata *Metadata `json:"-"`

	Incident Reference `json:"incident"`
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Trimmed  bool      `json:"trimmed"`
}

func (n *IncidentNote) EventType() (IncidentNoteEventType, error) {
	return ParseIncidentNoteEventType(n.Metadata.eventTypeSuffix())
}


// ConferenceNumber is one labeled dial-in number of a conference bridge.
type ConferenceNumber struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}

// IncidentConferenceBridge reports a change to an incident's conference
// bridge.
type IncidentConferenceBridge struct {
	Metadata *Metadata `json:"-"`

	Incident          Reference          `json:"incident"`
	ConferenceNumbers []ConferenceNumber `json:"conference_numbers"`
	ConferenceURL     string             `json:"conference_url"`
}

func (b *IncidentConferenceBridge) EventType() (IncidentConferenceBridgeEventType, error) {
	return ParseIncidentConferenceBridgeEventType(b.Metadata.eventTypeSuffix())
}


// CustomFieldType describes how many values a custom field holds and whether
// they come from a fixed set.
type CustomFieldType int

const (
	CustomFieldTypeUnknown CustomFieldType = iota
	CustomFieldSingleValue
	CustomFieldSingleValueFixed
	CustomFieldMultiValue
	CustomFieldMultiValueFixed
)

var customFieldTypeNames = map[string]CustomFieldType{
	"single_value":       CustomFieldSingleValue,
	"single_value_fixed": CustomFieldSingleValueFixed,
	"multi_value":        CustomFieldMultiValue,
	"multi_value_fixed":  CustomFieldMultiValueFixed,
}

func (t *CustomFieldType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t = customFieldTypeNames[name]
	return nil
}

// CustomFieldDataType is the value type of a custom field.
type CustomFieldDataType int

const (
	CustomFieldDataTypeUnknown CustomFieldDataType = iota
	CustomFieldDataBoolean
	CustomFieldDataInteger
	CustomFieldDataFloat
	CustomFieldDataString
	CustomFieldDataDatetime
	CustomFieldDataURL
)

var customFieldDataTypeNames = map[string]CustomFieldDataType{
	"boolean":  CustomFieldDataBoolean,
	"integer":  CustomFieldDataInteger,
	"float":    CustomFieldDataFloat,
	"string":   CustomFieldDataString,
	"datetime": CustomFieldDataDatetime,
	"url":      CustomFieldDataURL,
}

func (t *CustomFieldDataType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t = customFieldDataTypeNames[name]
	return nil
}

// CustomField is one custom field value on an incident.
type CustomField struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Namespace string              `json:"namespace"`
	DataType  CustomFieldDataType `json:"data_type"`
	FieldType CustomFieldType     `json:"field_type"`
	Value     any                 `json:"value"`
}

// IncidentFieldValues reports a change to an incident's custom field values.
type IncidentFieldValues struct {
	Metadata *Metadata `json:"-"`

	Incident            Reference     `json:"incident"`
	CustomFields        []CustomField `json:"custom_fields"`
	ChangedCustomFields []CustomField `json:"changed_custom_fields"`
}

func (f *IncidentFieldValues) EventType() (IncidentFieldValuesEventType, error) {
	return ParseIncidentFieldValuesEventType(f.Metadata.eventTypeSuffix())
}


// IncidentStatusUpdate is a status update published on an incident.
type IncidentStatusUpdate struct {
	Metadata *Metadata `json:"-"`

	Incident Reference `json:"incident"`
	ID       string    `json:"id"`
	Message  string    `json:"message"`
	Trimmed  bool      `json:"trimmed"`
}

func (u *IncidentStatusUpdate) EventType() (IncidentStatusUpdateEventType, error) {
	return ParseIncidentStatusUpdateEventType(u.Metadata.eventTypeSuffix())
}


// IncidentResponder reports a responder being added to an incident or
// replying to a responder request.
type IncidentResponder struct {
	Metadata *Metadata `json:"-"`

	Incident         Reference `json:"incident"`
	User             Reference `json:"user"`
	EscalationPolicy Reference `json:"escalation_policy"`
	Message          string    `json:"message"`
	State            string    `json:"state"`
}

func (r *IncidentResponder) EventType() (IncidentResponderEventType, error) {
	return ParseIncidentResponderEventType(r.Metadata.eventTypeSuffix())
}


// IncidentWorkflowInstance reports an incident workflow starting or
// completing.
type IncidentWorkflowInstance struct {
	Metadata *Metadata `json:"-"`

	ID               string    `json:"id"`
	Summary          string    `json:"summary"`
	Incident         Reference `json:"incident"`
	IncidentWorkflow Reference `json:"incident_workflow"`
	WorkflowTrigger  Reference `json:"workflow_trigger"`
	Service          Reference `json:"service"`
}

func (w *IncidentWorkflowInstance) EventType() (IncidentWorkflowInstanceEventType, error) {
	return ParseIncidentWorkflowInstanceEventType(w.Metadata.eventTypeSuffix())
}


// Service reports a service being created, updated, or deleted.
type Service struct {
	Metadata *Metadata `json:"-"`

	ID            string      `json:"id"`
	HTMLURL       string      `json:"html_url"`
	Self          string      `json:"self"`
	Summary       string      `json:"summary"`
	AlertCreation string      `json:"alert_creation"`
	Teams         []Reference `json:"teams"`
}

func (s *Service) EventType() (ServiceEventType, error) {
	return ParseServiceEventType(s.Metadata.eventTypeSuffix())
}

