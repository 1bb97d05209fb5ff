package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalWithRoutingKey(t *testing.T, event Event, routingKey string) string {
	t.Helper()
	event.setRoutingKey(routingKey)
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return string(data)
}

func TestTriggerAlertSerialization(t *testing.T) {
	timestamp := time.Date(2022, 10, 15, 8, 20, 45, 0, time.UTC)

	alert := NewTriggerAlert(SeverityError, "summaryhere")
	alert.Source = "sourcehere"
	alert.DedupKey = "dedupkeyhere"
	alert.Timestamp = &timestamp
	alert.Component = "componenthere"
	alert.Group = "grouphere"
	alert.Class = "classhere"
	alert.CustomDetails = map[string]any{"a": 1, "b": "c"}
	alert.Links = []Link{{Href: "https://aldaviva.com", Text: "Aldaviva"}}
	alert.Images = []Image{{
		Src:  "https://aldaviva.com/avatars/ben.jpg",
		Href: "https://aldaviva.com",
		Alt:  "Ben Hutchison",
	}}
	alert.Client = "clienthere"
	alert.ClientURL = "https://client.example.com"

	assert.JSONEq(t, `{
		"routing_key": "routingkeyhere",
		"event_action": "trigger",
		"dedup_key": "dedupkeyhere",
		"payload": {
			"summary": "summaryhere",
			"timestamp": "2022-10-15T08:20:45Z",
			"source": "sourcehere",
			"severity": "error",
			"component": "componenthere",
			"group": "grouphere",
			"class": "classhere",
			"custom_details": {"a": 1, "b": "c"}
		},
		"links": [{"href": "https://aldaviva.com", "text": "Aldaviva"}],
		"images": [{
			"src": "https://aldaviva.com/avatars/ben.jpg",
			"href": "https://aldaviva.com",
			"alt": "Ben Hutchison"
		}],
		"client": "clienthere",
		"client_url": "https://client.example.com"
	}`, marshalWithRoutingKey(t, alert, "routingkeyhere"))
}

func TestTriggerAlertMinimalSerialization(t *testing.T) {
	alert := NewTriggerAlert(SeverityWarning, "summaryhere")
	alert.Source = "sourcehere"

	// Optional fields are omitted entirely, but links and images always
	// appear as empty arrays.
	assert.JSONEq(t, `{
		"routing_key": "routingkeyhere",
		"event_action": "trigger",
		"payload": {
			"summary": "summaryhere",
			"source": "sourcehere",
			"severity": "warning"
		},
		"links": [],
		"images": []
	}`, marshalWithRoutingKey(t, alert, "routingkeyhere"))
}

func TestAcknowledgeAlertSerialization(t *testing.T) {
	alert := NewAcknowledgeAlert("dedupkeyhere")
	assert.JSONEq(t, `{
		"routing_key": "routingkeyhere",
		"event_action": "acknowledge",
		"dedup_key": "dedupkeyhere"
	}`, marshalWithRoutingKey(t, alert, "routingkeyhere"))
}

func TestResolveAlertSerialization(t *testing.T) {
	alert := NewResolveAlert("dedupkeyhere")
	assert.JSONEq(t, `{
		"routing_key": "routingkeyhere",
		"event_action": "resolve",
		"dedup_key": "dedupkeyhere"
	}`, marshalWithRoutingKey(t, alert, "routingkeyhere"))
}

func TestChangeSerialization(t *testing.T) {
	timestamp := time.Date(2022, 10, 15, 8, 20, 45, 0, time.UTC)

	change := NewChange("summaryhere")
	change.Source = "sourcehere"
	change.Timestamp = &timestamp
	change.CustomDetails = map[string]any{"build": 42}
	change.Links = []Link{{Href: "https://aldaviva.com"}}

	assert.JSONEq(t, `{
		"routing_key": "routingkeyhere",
		"payload": {
			"summary": "summaryhere",
			"timestamp": "2022-10-15T08:20:45Z",
			"source": "sourcehere",
			"custom_details": {"build": 42}
		},
		"links": [{"href": "https://aldaviva.com"}],
		"images": []
	}`, marshalWithRoutingKey(t, change, "routingkeyhere"))
}

func TestFollowUpConstructorsFromResponse(t *testing.T) {
	resp := &AlertResponse{DedupKey: "dedupkeyhere"}

	assert.Equal(t, "dedupkeyhere", NewAcknowledgeAlertFromResponse(resp).DedupKey)
	assert.Equal(t, "dedupkeyhere", NewResolveAlertFromResponse(resp).DedupKey)
}

func TestSeverityNames(t *testing.T) {
	cases := []struct {
		severity Severity
		name     string
	}{
		{SeverityCritical, "critical"},
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.severity.String())

			parsed, err := ParseSeverity(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.severity, parsed)
		})
	}

	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestNewTriggerAlertDefaultsSourceToHostname(t *testing.T) {
	alert := NewTriggerAlert(SeverityInfo, "summaryhere")
	assert.Equal(t, localSource(), alert.Source)
}
