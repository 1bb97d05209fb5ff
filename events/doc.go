// Package events submits alert and change events to the PagerDuty Events API v2.
//
// Build a TriggerAlert, AcknowledgeAlert, ResolveAlert, or Change, then hand it
// to a Client configured with your integration key:
//
//	client := events.NewClient(os.Getenv("PAGERDUTY_ROUTING_KEY"))
//	defer client.Close()
//
//	alert := events.NewTriggerAlert(events.SeverityError, "disk full on db01")
//	resp, err := client.SendAlert(ctx, alert)
//	if err != nil {
//		var retryable events.Retryable
//		if errors.As(err, &retryable) && retryable.RetryAllowedAfterDelay() {
//			// back off and try again later
//		}
//	}
//
// The Events API accepts exactly one success status (202). Every other HTTP
// status is surfaced as a typed error so callers can decide between "retry
// now", "retry later", and "never retry" without matching message strings.
// The retry loop itself is the caller's responsibility.
package events
