package webhooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncidentEventType(t *testing.T) {
	cases := []struct {
		suffix string
		want   IncidentEventType
	}{
		{"triggered", IncidentEventTriggered},
		{"acknowledged", IncidentEventAcknowledged},
		{"unacknowledged", IncidentEventUnacknowledged},
		{"resolved", IncidentEventResolved},
		{"reopened", IncidentEventReopened},
		{"escalated", IncidentEventEscalated},
		{"delegated", IncidentEventDelegated},
		{"reassigned", IncidentEventReassigned},
		{"priority_updated", IncidentEventPriorityUpdated},
		{"service_updated", IncidentEventServiceUpdated},
		{"incident_type.changed", IncidentEventTypeChanged},
	}
	for _, tc := range cases {
		t.Run(tc.suffix, func(t *testing.T) {
			got, err := ParseIncidentEventType(tc.suffix)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.suffix, got.String())
		})
	}
}

func TestParseUnknownSuffixReturnsSentinel(t *testing.T) {
	incidentType, err := ParseIncidentEventType("vaporized")
	assert.Error(t, err)
	assert.Equal(t, IncidentEventUnknown, incidentType)

	pingType, err := ParsePingEventType("pong")
	assert.Error(t, err)
	assert.Equal(t, PingEventUnknown, pingType)

	serviceType, err := ParseServiceEventType("")
	assert.Error(t, err)
	assert.Equal(t, ServiceEventUnknown, serviceType)
}

func TestParseSingleSuffixEventTypes(t *testing.T) {
	pingType, err := ParsePingEventType("ping")
	require.NoError(t, err)
	assert.Equal(t, PingEventPing, pingType)

	noteType, err := ParseIncidentNoteEventType("annotated")
	require.NoError(t, err)
	assert.Equal(t, IncidentNoteEventAnnotated, noteType)

	bridgeType, err := ParseIncidentConferenceBridgeEventType("conference_bridge.updated")
	require.NoError(t, err)
	assert.Equal(t, IncidentConferenceBridgeEventUpdated, bridgeType)

	fieldsType, err := ParseIncidentFieldValuesEventType("custom_field_values.updated")
	require.NoError(t, err)
	assert.Equal(t, IncidentFieldValuesEventUpdated, fieldsType)

	updateType, err := ParseIncidentStatusUpdateEventType("status_update_published")
	require.NoError(t, err)
	assert.Equal(t, IncidentStatusUpdateEventPublished, updateType)
}

func TestParseMultiSuffixEventTypes(t *testing.T) {
	added, err := ParseIncidentResponderEventType("added")
	require.NoError(t, err)
	assert.Equal(t, IncidentResponderEventAdded, added)

	replied, err := ParseIncidentResponderEventType("replied")
	require.NoError(t, err)
	assert.Equal(t, IncidentResponderEventReplied, replied)

	started, err := ParseIncidentWorkflowInstanceEventType("workflow.started")
	require.NoError(t, err)
	assert.Equal(t, IncidentWorkflowInstanceEventStarted, started)

	completed, err := ParseIncidentWorkflowInstanceEventType("workflow.completed")
	require.NoError(t, err)
	assert.Equal(t, IncidentWorkflowInstanceEventCompleted, completed)

	for suffix, want := range map[string]ServiceEventType{
		"created": ServiceEventCreated,
		"updated": ServiceEventUpdated,
		"deleted": ServiceEventDeleted,
	} {
		got, err := ParseServiceEventType(suffix)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEventTypeSuffix(t *testing.T) {
	cases := []struct {
		eventType string
		want      string
	}{
		{"incident.triggered", "triggered"},
		{"incident.incident_type.changed", "incident_type.changed"},
		{"pagey.ping", "ping"},
		{"nodotsatall", "nodotsatall"},
		{"", ""},
	}
	for _, tc := range cases {
		meta := &Metadata{EventType: tc.eventType}
		assert.Equal(t, tc.want, meta.eventTypeSuffix(), tc.eventType)
	}
}

func TestUnknownEventTypeString(t *testing.T) {
	assert.Equal(t, "unknown", IncidentEventUnknown.String())
	assert.Equal(t, "unknown", IncidentEventType(999).String())
}
