package events

import "os"

// Event is an outbound PagerDuty Events API v2 event. Concrete
// implementations are TriggerAlert, AcknowledgeAlert, ResolveAlert, and
// Change.
type Event interface {
	// apiPath is the path of this event's ingestion endpoint, relative to the
	// client's base URL.
	apiPath() string

	// setRoutingKey stamps the service-specific integration key onto the
	// event. The client calls this on every send, overwriting any previous
	// value.
	setRoutingKey(key string)
}

// Alert is an Event that creates or updates an incident: TriggerAlert,
// AcknowledgeAlert, or ResolveAlert.
type Alert interface {
	Event
	isAlert()
}

const (
	alertPath  = "enqueue"
	changePath = "change/enqueue"
)

type eventAction string

const (
	actionTrigger     eventAction = "trigger"
	actionAcknowledge eventAction = "acknowledge"
	actionResolve     eventAction = "resolve"
)

// Link is attached to an alert and/or its corresponding incident.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
}

// Image is displayed on an alert and/or its corresponding incident. Src must
// be served over HTTPS.
type Image struct {
	Src  string `json:"src"`
	Href string `json:"href,omitempty"`
	Alt  string `json:"alt,omitempty"`
}

// localSource is the default Source for new events: the local host name, or
// empty if it cannot be determined.
func localSource() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}
