package events

// EventResponse is the body PagerDuty returns when an event is accepted
// (HTTP 202). Immutable once parsed.
type EventResponse struct {
	// Status is "success", or a short error string on failure.
	Status string `json:"status"`

	// Message is a human-readable description of the outcome, e.g.
	// "Event processed".
	Message string `json:"message"`
}

// IsSuccessful reports whether the event was written successfully.
func (r *EventResponse) IsSuccessful() bool {
	return r.Status == "success"
}

// AlertResponse is the response to a submitted alert event. DedupKey
// correlates follow-up acknowledge and resolve events with the trigger; if
// the trigger did not supply one, this carries the server-generated key.
type AlertResponse struct {
	EventResponse

	DedupKey string `json:"dedup_key"`
}
