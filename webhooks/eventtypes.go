package webhooks

import "fmt"

// Each payload variant derives its event type from the suffix of the raw
// dotted event-type string through a closed, variant-specific table. An
// unrecognized suffix is a recoverable parse fault: the parse functions
// return the variant's Unknown sentinel plus an error, never panic, so new
// vendor sub-events degrade gracefully.

func parseEventType[T ~int](table map[string]T, resource, suffix string) (T, error) {
	if t, ok := table[suffix]; ok {
		return t, nil
	}
	var unknown T
	return unknown, fmt.Errorf("unrecognized %s event type suffix %q", resource, suffix)
}

func invertTable[T comparable](table map[string]T) map[T]string {
	names := make(map[T]string, len(table))
	for suffix, t := range table {
		names[t] = suffix
	}
	return names
}

func eventTypeName[T comparable](names map[T]string, t T) string {
	if name, ok := names[t]; ok {
		return name
	}
	return "unknown"
}

// PingEventType is the sub-event of a Ping payload.
type PingEventType int

const (
	PingEventUnknown PingEventType = iota
	PingEventPing
)

var pingEventTypes = map[string]PingEventType{
	"ping": PingEventPing,
}

var pingEventTypeNames = invertTable(pingEventTypes)

func (t PingEventType) String() string { return eventTypeName(pingEventTypeNames, t) }

// ParsePingEventType maps an event-type suffix to its PingEventType.
func ParsePingEventType(suffix string) (PingEventType, error) {
	return parseEventType(pingEventTypes, ResourceTypePing, suffix)
}

// IncidentEventType is the sub-event of an Incident payload.
type IncidentEventType int

const (
	IncidentEventUnknown IncidentEventType = iota
	IncidentEventTriggered
	IncidentEventAcknowledged
	IncidentEventUnacknowledged
	IncidentEventResolved
	IncidentEventReopened
	IncidentEventEscalated
	IncidentEventDelegated
	IncidentEventReassigned
	IncidentEventPriorityUpdated
	IncidentEventServiceUpdated
	// IncidentEventTypeChanged is the incident_type.changed sub-event, fired
	// when the incident's type is changed.
	IncidentEventTypeChanged
)

var incidentEventTypes = map[string]IncidentEventType{
	"triggered":             IncidentEventTriggered,
	"acknowledged":          IncidentEventAcknowledged,
	"unacknowledged":        IncidentEventUnacknowledged,
	"resolved":              IncidentEventResolved,
	"reopened":              IncidentEventReopened,
	"escalated":             IncidentEventEscalated,
	"delegated":             IncidentEventDelegated,
	"reassigned":            IncidentEventReassigned,
	"priority_updated":      IncidentEventPriorityUpdated,
	"service_updated":       IncidentEventServiceUpdated,
	"incident_type.changed": IncidentEventTypeChanged,
}

var incidentEventTypeNames = invertTable(incidentEventTypes)

func (t IncidentEventType) String() string { return eventTypeName(incidentEventTypeNames, t) }

// ParseIncidentEventType maps an event-type suffix to its IncidentEventType.
func ParseIncidentEventType(suffix string) (IncidentEventType, error) {
	return parseEventType(incidentEventTypes, ResourceTypeIncident, suffix)
}

// IncidentNoteEventType is the sub-event of an IncidentNote payload.
type IncidentNoteEventType int

const (
	IncidentNoteEventUnknown IncidentNoteEventType = iota
	IncidentNoteEventAnnotated
)

var incidentNoteEventTypes = map[string]IncidentNoteEventType{
	"annotated": IncidentNoteEventAnnotated,
}

var incidentNoteEventTypeNames = invertTable(incidentNoteEventTypes)

func (t IncidentNoteEventType) String() string { return eventTypeName(incidentNoteEventTypeNames, t) }

// ParseIncidentNoteEventType maps an event-type suffix to its
// IncidentNoteEventType.
func ParseIncidentNoteEventType(suffix string) (IncidentNoteEventType, error) {
	return parseEventType(incidentNoteEventTypes, ResourceTypeIncidentNote, suffix)
}

// IncidentConferenceBridgeEventType is the sub-event of an
// IncidentConferenceBridge payload.
type IncidentConferenceBridgeEventType int

const (
	IncidentConferenceBridgeEventUnknown IncidentConferenceBridgeEventType = iota
	IncidentConferenceBridgeEventUpdated
)

var incidentConferenceBridgeEventTypes = map[string]IncidentConferenceBridgeEventType{
	"conference_bridge.updated": IncidentConferenceBridgeEventUpdated,
}

var incidentConferenceBridgeEventTypeNames = invertTable(incidentConferenceBridgeEventTypes)

func (t IncidentConferenceBridgeEventType) String() string {
	return eventTypeName(incidentConferenceBridgeEventTypeNames, t)
}

// ParseIncidentConferenceBridgeEventType maps an event-type suffix to its
// IncidentConferenceBridgeEventType.
func ParseIncidentConferenceBridgeEventType(suffix string) (IncidentConferenceBridgeEventType, error) {
	return parseEventType(incidentConferenceBridgeEventTypes, ResourceTypeIncidentConferenceBridge, suffix)
}

// IncidentFieldValuesEventType is the sub-event of an IncidentFieldValues
// payload.
type IncidentFieldValuesEventType int

const (
	IncidentFieldValuesEventUnknown IncidentFieldValuesEventType = iota
	IncidentFieldValuesEventUpdated
)

var incidentFieldValuesEventTypes = map[string]IncidentFieldValuesEventType{
	"custom_field_values.updated": IncidentFieldValuesEventUpdated,
}

var incidentFieldValuesEventTypeNames = invertTable(incidentFieldValuesEventTypes)

func (t IncidentFieldValuesEventType) String() string {
	return eventTypeName(incidentFieldValuesEventTypeNames, t)
}

// ParseIncidentFieldValuesEventType maps an event-type suffix to its
// IncidentFieldValuesEventType.
func ParseIncidentFieldValuesEventType(suffix string) (IncidentFieldValuesEventType, error) {
	return parseEventType(incidentFieldValuesEventTypes, ResourceTypeIncidentFieldValues, suffix)
}

// IncidentStatusUpdateEventType is the sub-event of an IncidentStatusUpdate
// payload.
type IncidentStatusUpdateEventType int

const (
	IncidentStatusUpdateEventUnknown IncidentStatusUpdateEventType = iota
	IncidentStatusUpdateEventPublished
)

var incidentStatusUpdateEventTypes = map[string]IncidentStatusUpdateEventType{
	"status_update_published": IncidentStatusUpdateEventPublished,
}

var incidentStatusUpdateEventTypeNames = invertTable(incidentStatusUpdateEventTypes)

func (t IncidentStatusUpdateEventType) String() string {
	return eventTypeName(incidentStatusUpdateEventTypeNames, t)
}

// ParseIncidentStatusUpdateEventType maps an event-type suffix to its
// IncidentStatusUpdateEventType.
func ParseIncidentStatusUpdateEventType(suffix string) (IncidentStatusUpdateEventType, error) {
	return parseEventType(incidentStatusUpdateEventTypes, ResourceTypeIncidentStatusUpdate, suffix)
}

// IncidentResponderEventType is the sub-event of an IncidentResponder
// payload.
type IncidentResponderEventType int

const (
	IncidentResponderEventUnknown IncidentResponderEventType = iota
	IncidentResponderEventAdded
	IncidentResponderEventReplied
)

var incidentResponderEventTypes = map[string]IncidentResponderEventType{
	"added":   IncidentResponderEventAdded,
	"replied": IncidentResponderEventReplied,
}

var incidentResponderEventTypeNames = invertTable(incidentResponderEventTypes)

func (t IncidentResponderEventType) String() string {
	return eventTypeName(incidentResponderEventTypeNames, t)
}

// ParseIncidentResponderEventType maps an event-type suffix to its
// IncidentResponderEventType.
func ParseIncidentResponderEventType(suffix string) (IncidentResponderEventType, error) {
	return parseEventType(incidentResponderEventTypes, ResourceTypeIncidentResponder, suffix)
}

// IncidentWorkflowInstanceEventType is the sub-event of an
// IncidentWorkflowInstance payload.
type IncidentWorkflowInstanceEventType int

const (
	IncidentWorkflowInstanceEventUnknown IncidentWorkflowInstanceEventType = iota
	IncidentWorkflowInstanceEventStarted
	IncidentWorkflowInstanceEventCompleted
)

var incidentWorkflowInstanceEventTypes = map[string]IncidentWorkflowInstanceEventType{
	"workflow.started":   IncidentWorkflowInstanceEventStarted,
	"workflow.completed": IncidentWorkflowInstanceEventCompleted,
}

var incidentWorkflowInstanceEventTypeNames = invertTable(incidentWorkflowInstanceEventTypes)

func (t IncidentWorkflowInstanceEventType) String() string {
	return eventTypeName(incidentWorkflowInstanceEventTypeNames, t)
}

// ParseIncidentWorkflowInstanceEventType maps an event-type suffix to its
// IncidentWorkflowInstanceEventType.
func ParseIncidentWorkflowInstanceEventType(suffix string) (IncidentWorkflowInstanceEventType, error) {
	return parseEventType(incidentWorkflowInstanceEventTypes, ResourceTypeIncidentWorkflowInstance, suffix)
}

// ServiceEventType is the sub-event of a Service payload.
type ServiceEventType int

const (
	ServiceEventUnknown ServiceEventType = iota
	ServiceEventCreated
	ServiceEventUpdated
	ServiceEventDeleted
)

var serviceEventTypes = map[string]ServiceEventType{
	"created": ServiceEventCreated,
	"updated": ServiceEventUpdated,
	"deleted": ServiceEventDeleted,
}

var serviceEventTypeNames = invertTable(serviceEventTypes)

func (t ServiceEventType) String() string { return eventTypeName(serviceEventTypeNames, t) }

// ParseServiceEventType maps an event-type suffix to its ServiceEventType.
func ParseServiceEventType(suffix string) (ServiceEventType, error) {
	return parseEventType(serviceEventTypes, ResourceTypeService, suffix)
}
