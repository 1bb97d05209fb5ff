package events

import (
	"encoding/json"
	"time"
)

// Change records a change in a system that does not represent a problem, such
// as a deploy or a config update. Change events never create incidents or
// send notifications; PagerDuty shows them in context alongside incidents on
// the same service. They have no severity and no dedup key.
type Change struct {
	routingKey string

	// Summary is a brief description of the change.
	Summary string

	// Source is the unique name of the location where the change occurred.
	// Defaults to the local host name.
	Source string

	// Timestamp is when the emitting tool detected the change. Optional; when
	// omitted, PagerDuty uses the time it receives the event.
	Timestamp *time.Time

	// CustomDetails holds arbitrary additional details about the change. Any
	// JSON-serializable value. Optional.
	CustomDetails any

	Links  []Link
	Images []Image
}

// NewChange creates a change event. Source defaults to the local host name.
func NewChange(summary string) *Change {
	return &Change{
		Summary: summary,
		Source:  localSource(),
	}
}

func (c *Change) apiPath() string          { return changePath }
func (c *Change) setRoutingKey(key string) { c.routingKey = key }

func (c *Change) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RoutingKey string        `json:"routing_key"`
		Payload    changePayload `json:"payload"`
		Links      []Link        `json:"links"`
		Images     []Image       `json:"images"`
	}{
		RoutingKey: c.routingKey,
		Payload: changePayload{
			Summary:       c.Summary,
			Timestamp:     c.Timestamp,
			Source:        c.Source,
			CustomDetails: c.CustomDetails,
		},
		Links:  emptyIfNil(c.Links),
		Images: emptyIfNil(c.Images),
	})
}

type changePayload struct {
	Summary       string     `json:"summary"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
	Source        string     `json:"source,omitempty"`
	CustomDetails any        `json:"custom_details,omitempty"`
}
